package invoice

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/thelivecure/admin-api/internal/model"
)

// The single renderer used by both the persisted-invoice email and the
// direct-from-appointment email.
var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(invoiceHTML))

func renderInvoiceHTML(inv *model.Invoice) (string, error) {
	var sb strings.Builder
	if err := invoiceTmpl.Execute(&sb, inv); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return sb.String(), nil
}

const invoiceHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #333; margin: 0; padding: 24px; }
  .header { background: #0d6efd; color: #fff; padding: 16px 24px; border-radius: 6px 6px 0 0; }
  .header h1 { margin: 0; font-size: 20px; }
  .box { border: 1px solid #e0e0e0; border-top: none; padding: 24px; border-radius: 0 0 6px 6px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #eee; }
  .amount { text-align: right; }
  .total td { font-weight: bold; border-top: 2px solid #333; }
  .muted { color: #777; font-size: 12px; margin-top: 24px; }
</style>
</head>
<body>
  <div class="header">
    <h1>The Live Cure</h1>
    <div>Invoice {{.InvoiceNumber}}</div>
  </div>
  <div class="box">
    <p>
      <strong>Billed to:</strong> {{.PatientName}}<br>
      {{.PatientEmail}}{{if .PatientMobile}} &middot; {{.PatientMobile}}{{end}}
    </p>
    <p>
      <strong>Doctor:</strong> {{.DoctorName}}<br>
      <strong>Treatment:</strong> {{.TreatmentType}}{{if .City}}<br>
      <strong>City:</strong> {{.City}}{{end}}
    </p>
    <p>
      <strong>Issue date:</strong> {{.IssueDate.Format "02 Jan 2006"}}<br>
      <strong>Due date:</strong> {{.DueDate.Format "02 Jan 2006"}}
    </p>
    <table>
      <tr><th>Description</th><th class="amount">Amount</th></tr>
      <tr><td>Consultation fee</td><td class="amount">{{money .ConsultationFee}}</td></tr>
      <tr><td>Platform fee</td><td class="amount">{{money .PlatformFee}}</td></tr>
      {{if gt .Discount 0.0}}<tr><td>Discount</td><td class="amount">-{{money .Discount}}</td></tr>{{end}}
      <tr><td>Subtotal</td><td class="amount">{{money .Subtotal}}</td></tr>
      <tr><td>Tax</td><td class="amount">{{money .Tax}}</td></tr>
      <tr class="total"><td>Total</td><td class="amount">{{money .Total}}</td></tr>
    </table>
    {{if .Notes}}<p>{{.Notes}}</p>{{end}}
    <p class="muted">Please settle this invoice by the due date. For questions reply to this email.</p>
  </div>
</body>
</html>`
