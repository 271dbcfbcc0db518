package parties

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var csvHeader = []string{"party_name", "address", "city", "state", "pincode", "gst_number", "contact_person", "mobile", "email"}

// ExportCSV writes every party to w in the import-compatible column order.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	all, _, err := s.repo.List(ctx, ListPartiesRequest{Limit: 10000})
	if err != nil {
		return fmt.Errorf("list parties: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range all {
		record := []string{p.Name, p.Address, p.City, p.State, p.Pincode, p.GSTNumber, p.ContactPerson, p.Mobile, p.Email}
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

// ImportCSV reads party rows from r and inserts them. Rows without a name are
// skipped and reported; names and cities are title-cased so hand-edited
// spreadsheets come in consistently.
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
	if _, ok := col["party_name"]; !ok {
		return nil, fmt.Errorf("csv missing party_name column")
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

		name := field("party_name")
		if name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: empty party_name", line))
			continue
		}

		party := Party{
			Name:          titler.String(name),
			Address:       field("address"),
			City:          titler.String(field("city")),
			State:         titler.String(field("state")),
			Pincode:       field("pincode"),
			GSTNumber:     strings.ToUpper(field("gst_number")),
			ContactPerson: field("contact_person"),
			Mobile:        field("mobile"),
			Email:         strings.ToLower(field("email")),
			Status:        PartyStatusActive,
			CreatedBy:     createdBy,
		}
		if _, err := s.repo.Create(ctx, party); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}
