package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet   = "Sheet1"
	separatorWidth = 100
)

// Sheet is a rectangular export: a header and rows of cell values. Cells hold
// string, int, float64, bool, time.Time or nil for a missing value.
type Sheet struct {
	Header []string
	Rows   [][]any
}

// Sheet renders the table's known columns in canonical order.
func (t *Table) Sheet() Sheet {
	var columns []string
	for _, c := range StatisticsColumns {
		if t.Has(c) {
			columns = append(columns, c)
		}
	}

	s := Sheet{Header: columns, Rows: make([][]any, 0, len(t.Reviews))}
	for _, r := range t.Reviews {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = reviewCell(r, c)
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func reviewCell(r model.Review, column string) any {
	switch column {
	case ColID:
		return r.ID
	case ColAsin:
		return r.Asin
	case ColTitle:
		return r.Title
	case ColContent:
		if r.Content == nil {
			return nil
		}
		return *r.Content
	case ColModel:
		return r.Model
	case ColRating:
		if r.Rating == nil {
			return nil
		}
		return *r.Rating
	case ColDate:
		if r.Date == nil {
			return nil
		}
		return *r.Date
	case ColReviewType:
		if r.ReviewType == "" {
			return nil
		}
		return string(r.ReviewType)
	}
	return nil
}

// FormatCell renders a cell for text output. Missing values become "".
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	case time.Time:
		return FormatDate(c)
	default:
		return fmt.Sprint(c)
	}
}

// Write encodes s in the given format.
func Write(w io.Writer, format Format, s Sheet) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, s)
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatText:
		return WriteText(w, s)
	default:
		return fmt.Errorf("%w: cannot write %q", common.ErrUnsupportedFormat, format)
	}
}

// WriteFile writes s to path, choosing the format from the extension.
func WriteFile(path string, s Sheet) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(f, format, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteXLSX writes s as a single-sheet workbook.
func WriteXLSX(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}

	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, row := range s.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			if t, ok := v.(time.Time); ok {
				v = FormatDate(t)
			}
			cells[j] = v
		}
		if err := setRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(defaultSheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// WriteCSV writes s as comma-separated values.
func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	for _, row := range s.Rows {
		if err := cw.Write(formatRow(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes the tab-delimited text export: the header, a separator
// line, then one line per record.
func WriteText(w io.Writer, s Sheet) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(strings.Join(s.Header, "\t"))
	bw.WriteString("\n")
	bw.WriteString(strings.Repeat("-", separatorWidth))
	bw.WriteString("\n")

	for _, row := range s.Rows {
		bw.WriteString(strings.Join(formatRow(row), "\t"))
		bw.WriteString("\n")
	}

	return bw.Flush()
}

func formatRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FormatCell(v)
	}
	return out
}
