package excel

// ReaderConfig holds configuration for a tabular data source
type ReaderConfig struct {
	FilePath    string `json:"file_path"`
	Sheet       string `json:"sheet"`        // xlsx only; defaults to the first sheet
	IndexColumn string `json:"index_column"` // optional row label column
}

// DefaultSheet is used when an xlsx workbook has no sheets listed.
const DefaultSheet = "Sheet1"
