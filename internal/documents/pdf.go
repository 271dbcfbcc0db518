package documents

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/meridian-crm/meridian-crm/internal/settings"
	"github.com/meridian-crm/meridian-crm/report"
)

// PDFRenderer turns a document into a printable PDF via Gotenberg.
type PDFRenderer struct {
	client       *report.Client
	settingsRepo settings.Repository
	tmpl         *template.Template
}

func NewPDFRenderer(client *report.Client, settingsRepo settings.Repository) *PDFRenderer {
	return &PDFRenderer{
		client:       client,
		settingsRepo: settingsRepo,
		tmpl:         template.Must(template.New("document").Parse(documentTemplate)),
	}
}

type pdfData struct {
	Title       string
	CompanyName string
	Doc         *Document
	Totals      Totals
	ValidUntil  string
	IntraState  bool
}

// Render produces the PDF bytes for a document.
func (p *PDFRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	cfg, err := p.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	data := pdfData{
		Title:       doc.Kind.Label(),
		CompanyName: cfg.CompanyName,
		Doc:         doc,
		Totals:      CalculateTotals(doc.Lines, doc.TaxType),
		IntraState:  doc.TaxType == TaxTypeCGSTSGST,
	}
	if doc.ValidityDays > 0 {
		data.ValidUntil = doc.DocDate.AddDate(0, 0, doc.ValidityDays).Format("02 Jan 2006")
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render document html: %w", err)
	}
	return p.client.RenderHTML(ctx, buf.String())
}

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; margin: 32px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 0; }
  .meta { margin: 12px 0; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { border: 1px solid #999; padding: 6px 8px; text-align: left; }
  th { background: #efefef; }
  td.num, th.num { text-align: right; }
  .totals td { border: none; }
  .terms { margin-top: 24px; white-space: pre-wrap; }
</style>
</head>
<body>
  <h1>{{.CompanyName}}</h1>
  <h2>{{.Title}} {{.Doc.DocNumber}}</h2>
  <div class="meta">
    <div><strong>Party:</strong> {{.Doc.PartyName}}</div>
    <div><strong>Date:</strong> {{.Doc.DocDate.Format "02 Jan 2006"}}</div>
    {{if .ValidUntil}}<div><strong>Valid until:</strong> {{.ValidUntil}}</div>{{end}}
    {{if .Doc.PartyConfirmationID}}<div><strong>Party confirmation:</strong> {{.Doc.PartyConfirmationID}}</div>{{end}}
  </div>
  <table>
    <tr>
      <th>#</th><th>Item</th><th>HSN</th><th>UOM</th>
      <th class="num">Rate</th><th class="num">Qty</th><th class="num">Disc %</th>
      <th class="num">Taxable</th><th class="num">GST %</th><th class="num">Tax</th><th class="num">Total</th>
    </tr>
    {{range $i, $line := .Doc.Lines}}
    <tr>
      <td>{{$line.LineOrder}}</td>
      <td>{{$line.ItemName}}{{if $line.Description}}<br><small>{{$line.Description}}</small>{{end}}</td>
      <td>{{$line.HSN}}</td>
      <td>{{$line.UOM}}</td>
      <td class="num">{{printf "%.2f" $line.Rate}}</td>
      <td class="num">{{printf "%.2f" $line.Quantity}}</td>
      <td class="num">{{printf "%.2f" $line.DiscountPercent}}</td>
      <td class="num">{{printf "%.2f" $line.TaxableValue}}</td>
      <td class="num">{{printf "%.2f" $line.GSTPercent}}</td>
      <td class="num">{{printf "%.2f" $line.TaxAmount}}</td>
      <td class="num">{{printf "%.2f" $line.LineTotal}}</td>
    </tr>
    {{end}}
  </table>
  <table class="totals">
    <tr><td></td><td class="num"><strong>Subtotal:</strong> {{printf "%.2f" .Totals.Subtotal}}</td></tr>
    {{if .IntraState}}
    <tr><td></td><td class="num"><strong>CGST:</strong> {{printf "%.2f" .Totals.CGST}}</td></tr>
    <tr><td></td><td class="num"><strong>SGST:</strong> {{printf "%.2f" .Totals.SGST}}</td></tr>
    {{else}}
    <tr><td></td><td class="num"><strong>IGST:</strong> {{printf "%.2f" .Totals.IGST}}</td></tr>
    {{end}}
    <tr><td></td><td class="num"><strong>Grand Total:</strong> {{printf "%.2f" .Totals.GrandTotal}}</td></tr>
  </table>
  {{if .Doc.PaymentTerms}}<div class="terms"><strong>Payment terms</strong><br>{{.Doc.PaymentTerms}}</div>{{end}}
  {{if .Doc.DeliveryTerms}}<div class="terms"><strong>Delivery terms</strong><br>{{.Doc.DeliveryTerms}}</div>{{end}}
  {{if .Doc.TermsAndConditions}}<div class="terms"><strong>Terms &amp; conditions</strong><br>{{.Doc.TermsAndConditions}}</div>{{end}}
  {{if .Doc.Remarks}}<div class="terms"><strong>Remarks</strong><br>{{.Doc.Remarks}}</div>{{end}}
</body>
</html>`
