package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/xuri/excelize/v2"
)

// Format identifies a tabular file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".txt", ".tsv":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Raw is a table exactly as read: a header row and string cells. Empty cells
// are empty strings and rows may be shorter than the header.
type Raw struct {
	index  map[string]int
	Header []string
	Rows   [][]string
}

// NewRaw builds a Raw table, trimming header names.
func NewRaw(header []string, rows [][]string) *Raw {
	r := &Raw{
		Header: make([]string, len(header)),
		Rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		r.Header[i] = h
		if _, dup := r.index[h]; !dup {
			r.index[h] = i
		}
	}
	return r
}

// Has reports whether the header contains column.
func (r *Raw) Has(column string) bool {
	_, ok := r.index[column]
	return ok
}

// Cell returns the value of column in row i. Missing columns, short rows and
// empty cells all report false.
func (r *Raw) Cell(i int, column string) (string, bool) {
	col, ok := r.index[column]
	if !ok || i < 0 || i >= len(r.Rows) {
		return "", false
	}
	row := r.Rows[i]
	if col >= len(row) || row[col] == "" {
		return "", false
	}
	return row[col], true
}

// ReadFile reads an xlsx, csv or tab-delimited text file.
func ReadFile(path string) (*Raw, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read parses r in the given format.
func Read(r io.Reader, format Format) (*Raw, error) {
	switch format {
	case FormatXLSX:
		return readXLSX(r)
	case FormatCSV:
		return readDelimited(r, ',')
	case FormatText:
		return readText(r)
	default:
		return nil, fmt.Errorf("%w: cannot read %q", common.ErrUnsupportedFormat, format)
	}
}

func readXLSX(r io.Reader) (*Raw, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.ErrEmptyTable
	}

	// Raw values keep dates as serial numbers instead of locale-formatted text.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, common.ErrEmptyTable
	}

	return NewRaw(rows[0], rows[1:]), nil
}

func readDelimited(r io.Reader, comma rune) (*Raw, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, common.ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}

	return NewRaw(header, rows), nil
}

// readText parses the tab-delimited text export. Fields are split on tabs
// without quoting, and the dashed separator line under the header is skipped.
func readText(r io.Reader) (*Raw, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header []string
	var rows [][]string
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if header == nil {
			text = strings.TrimPrefix(text, "\ufeff")
			if strings.TrimSpace(text) == "" {
				continue
			}
			header = strings.Split(text, "\t")
			continue
		}
		if len(rows) == 0 && isSeparator(text) {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		rows = append(rows, strings.Split(text, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line %d: %w", line+1, err)
	}
	if header == nil {
		return nil, common.ErrEmptyTable
	}

	return NewRaw(header, rows), nil
}

func isSeparator(line string) bool {
	return line != "" && strings.Trim(line, "-") == ""
}
