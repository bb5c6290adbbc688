package excel

// RawTable is a header row plus string cells, as read from the file.
type RawTable struct {
	Headers []string
	Rows    [][]string
}
