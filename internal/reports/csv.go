package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeItemSalesCSV(w io.Writer, rows []ItemSales) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"item_code", "item_name", "quantity", "taxable_value", "tax_amount", "total"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.ItemCode, row.ItemName, money(row.Quantity), money(row.TaxableValue), money(row.TaxAmount), money(row.Total)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePartySalesCSV(w io.Writer, rows []PartySales) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"party_name", "documents", "taxable_value", "total"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.PartyName, strconv.Itoa(row.Documents), money(row.TaxableValue), money(row.Total)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeUserSalesCSV(w io.Writer, rows []UserSales) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"user_name", "documents", "total"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.UserName, strconv.Itoa(row.Documents), money(row.Total)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeQuotationAgingCSV(w io.Writer, rows []QuotationAging) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"doc_number", "party_name", "doc_date", "status", "grand_total", "age_days"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.DocNumber, row.PartyName, row.DocDate.Format("2006-01-02"), row.Status, money(row.GrandTotal), strconv.Itoa(row.AgeDays)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeGSTSummaryCSV(w io.Writer, rows []GSTSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tax_type", "documents", "taxable_value", "tax_amount"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.TaxType, strconv.Itoa(row.Documents), money(row.TaxableValue), money(row.TaxAmount)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
