package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"goresid/domain/dataset"
	"goresid/internal"
	"goresid/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files into frames
type DataReader struct {
	config   ReaderConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

var _ ports.FrameReader = (*DataReader)(nil)

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{config: config, fileType: fileType, logger: internal.DefaultLogger}
}

// WithLogger replaces the reader's logger.
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

// ReadFrame reads the file and converts every column except the index
// column to float64.
func (r *DataReader) ReadFrame(ctx context.Context) (*dataset.Frame, error) {
	raw, err := r.ReadRaw(ctx)
	if err != nil {
		return nil, err
	}
	return ToFrame(raw, r.config.IndexColumn)
}

// ReadRaw reads the header and string cells without conversion.
func (r *DataReader) ReadRaw(ctx context.Context) (*RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath)
	}

	var rows [][]string
	var err error
	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)", strings.ToUpper(r.fileType),
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}
	return processRows(rows), nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheet = DefaultSheet
		if sheets := f.GetSheetList(); len(sheets) > 0 {
			sheet = sheets[0]
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows trims headers and cells. Short rows are padded with empty
// cells so every row has one cell per header.
func processRows(rows [][]string) *RawTable {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for j := range headers {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		out = append(out, cells)
	}
	return &RawTable{Headers: headers, Rows: out}
}

// ToFrame parses every non-index column as float64. Empty, non-numeric or
// non-finite cells are errors; no imputation is done.
func ToFrame(raw *RawTable, indexColumn string) (*dataset.Frame, error) {
	indexPos := -1
	if indexColumn != "" {
		for i, h := range raw.Headers {
			if h == indexColumn {
				indexPos = i
				break
			}
		}
		if indexPos < 0 {
			return nil, fmt.Errorf("index column %q not found in header", indexColumn)
		}
	}

	var names []string
	var values [][]float64
	var index []string
	if indexPos >= 0 {
		index = make([]string, len(raw.Rows))
	}
	for j, header := range raw.Headers {
		if j == indexPos {
			for i, row := range raw.Rows {
				index[i] = row[j]
			}
			continue
		}
		col := make([]float64, len(raw.Rows))
		for i, row := range raw.Rows {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				return nil, fmt.Errorf("column %q cell %s: %q is not numeric", header, cell, row[j])
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				return nil, fmt.Errorf("column %q cell %s: %q is not finite", header, cell, row[j])
			}
			col[i] = v
		}
		names = append(names, header)
		values = append(values, col)
	}
	return dataset.NewFrame(names, values, index)
}
