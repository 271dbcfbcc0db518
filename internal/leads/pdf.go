package leads

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/meridian-crm/meridian-crm/internal/settings"
	"github.com/meridian-crm/meridian-crm/report"
)

// PDFRenderer turns a lead into a printable summary sheet via Gotenberg.
type PDFRenderer struct {
	client       *report.Client
	settingsRepo settings.Repository
	tmpl         *template.Template
}

func NewPDFRenderer(client *report.Client, settingsRepo settings.Repository) *PDFRenderer {
	return &PDFRenderer{
		client:       client,
		settingsRepo: settingsRepo,
		tmpl:         template.Must(template.New("lead").Parse(leadTemplate)),
	}
}

type leadPDFData struct {
	CompanyName string
	Lead        *Lead
	FollowUp    string
}

// Render produces the PDF bytes for a lead information sheet.
func (p *PDFRenderer) Render(ctx context.Context, lead *Lead) ([]byte, error) {
	cfg, err := p.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	data := leadPDFData{
		CompanyName: cfg.CompanyName,
		Lead:        lead,
	}
	if lead.FollowUpDate != nil {
		data.FollowUp = lead.FollowUpDate.Format("02 Jan 2006")
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render lead html: %w", err)
	}
	return p.client.RenderHTML(ctx, buf.String())
}

const leadTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; margin: 32px; color: #222; }
  h1 { font-size: 18px; margin-bottom: 0; }
  .title { font-size: 15px; font-weight: bold; text-align: center; background: #f0f0f0; padding: 8px; margin: 16px 0; }
  .row { margin: 6px 0; }
  .label { font-weight: bold; display: inline-block; width: 140px; }
  .section { font-size: 13px; font-weight: bold; background: #e8e8e8; padding: 6px 8px; margin-top: 20px; }
  .box { border: 1px solid #ddd; padding: 12px; margin-top: 8px; background: #fafafa; white-space: pre-wrap; }
</style>
</head>
<body>
  <h1>{{.CompanyName}}</h1>
  <div class="title">LEAD INFORMATION</div>
  <div class="row"><span class="label">Lead ID:</span> {{.Lead.ID}}</div>
  <div class="row"><span class="label">Date:</span> {{.Lead.CreatedAt.Format "02 Jan 2006"}}</div>
  <div class="row"><span class="label">Status:</span> {{.Lead.Status}}</div>
  {{if .FollowUp}}<div class="row"><span class="label">Follow-up:</span> {{.FollowUp}}</div>{{end}}
  <div class="section">PARTY DETAILS</div>
  <div class="box">
    <div><strong>Party:</strong> {{.Lead.PartyName}}</div>
    {{if .Lead.ContactPerson}}<div><strong>Contact:</strong> {{.Lead.ContactPerson}}</div>{{end}}
    {{if .Lead.Mobile}}<div><strong>Mobile:</strong> {{.Lead.Mobile}}</div>{{end}}
    {{if .Lead.Email}}<div><strong>Email:</strong> {{.Lead.Email}}</div>{{end}}
    {{if .Lead.Source}}<div><strong>Source:</strong> {{.Lead.Source}}</div>{{end}}
  </div>
  {{if .Lead.Requirement}}
  <div class="section">REQUIREMENT</div>
  <div class="box">{{.Lead.Requirement}}</div>
  {{end}}
  {{if .Lead.Remarks}}
  <div class="section">REMARKS</div>
  <div class="box">{{.Lead.Remarks}}</div>
  {{end}}
</body>
</html>`
