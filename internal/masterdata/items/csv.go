package items

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var csvHeader = []string{"item_code", "item_name", "description", "uom", "rate", "hsn", "gst_percent", "brand", "category"}

// ExportCSV writes every item to w in the import-compatible column order.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	all, _, err := s.repo.List(ctx, ListItemsRequest{Limit: 10000})
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range all {
		record := []string{
			item.Code, item.Name, item.Description, item.UOM,
			strconv.FormatFloat(item.Rate, 'f', 2, 64),
			item.HSN,
			strconv.FormatFloat(item.GSTPercent, 'f', 2, 64),
			item.Brand, item.Category,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportResult summarises a CSV upload.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportCSV reads item rows from r and inserts them. Numeric columns are
// parsed tolerantly: unparseable rate/gst values become 0 rather than
// failing the whole upload.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, createdBy int64) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["item_code"]; !ok {
		return nil, fmt.Errorf("csv missing item_code column")
	}

	titler := cases.Title(language.English)
	result := &ImportResult{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		field := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		numeric := func(name string) float64 {
			v, err := strconv.ParseFloat(field(name), 64)
			if err != nil {
				return 0
			}
			return v
		}

		code := field("item_code")
		if code == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: empty item_code", line))
			continue
		}

		item := Item{
			Code:        strings.ToUpper(code),
			Name:        field("item_name"),
			Description: field("description"),
			UOM:         field("uom"),
			Rate:        numeric("rate"),
			HSN:         field("hsn"),
			GSTPercent:  numeric("gst_percent"),
			Brand:       titler.String(field("brand")),
			Category:    titler.String(field("category")),
			CreatedBy:   createdBy,
		}
		if item.UOM == "" {
			item.UOM = "Nos"
		}
		if _, err := s.repo.Create(ctx, item); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}
