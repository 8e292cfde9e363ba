// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/resteel-cart/internal/config"
	"github.com/your-org/resteel-cart/internal/domain/cart"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
	tmpl   *template.Template
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		tmpl:   template.Must(template.New("quote").Parse(quoteTemplate)),
		now:    time.Now,
	}
}

// QuoteData represents the data passed to the quote template
type QuoteData struct {
	QuoteNumber string
	QuoteDate   string
	ValidUntil  string
	Lines       []QuoteLine
	Totals      QuoteTotals
	Company     CompanyInfo
}

// QuoteLine is one formatted cart line
type QuoteLine struct {
	Name           string
	Category       string
	Specifications string
	Quantity       int
	Price          string
	LineTotal      string
}

// QuoteTotals holds the formatted cart totals
type QuoteTotals struct {
	Subtotal     string
	Tax          string
	Shipping     string
	FreeShipping bool
	Total        string
	ItemCount    int
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// GenerateQuote renders a PDF quote for the given cart contents
func (s *Service) GenerateQuote(reference string, items []cart.LineItem, totals cart.Totals) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderQuoteHTML(reference, items, totals)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// RenderQuoteHTML renders the HTML that GenerateQuote converts to PDF
func (s *Service) RenderQuoteHTML(reference string, items []cart.LineItem, totals cart.Totals) (string, error) {
	now := s.now()

	data := QuoteData{
		QuoteNumber: fmt.Sprintf("Q-%s-%s", now.Format("20060102"), reference),
		QuoteDate:   now.Format("January 2, 2006"),
		ValidUntil:  now.AddDate(0, 0, 14).Format("January 2, 2006"),
		Lines:       make([]QuoteLine, 0, len(items)),
		Totals: QuoteTotals{
			Subtotal:     totals.Subtotal.StringFixed(2),
			Tax:          totals.Tax.StringFixed(2),
			Shipping:     totals.Shipping.StringFixed(2),
			FreeShipping: totals.Shipping.IsZero(),
			Total:        totals.Total.StringFixed(2),
			ItemCount:    totals.ItemCount,
		},
		Company: CompanyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
			Website: s.config.Company.Website,
		},
	}

	for _, item := range items {
		data.Lines = append(data.Lines, QuoteLine{
			Name:           item.Name,
			Category:       item.Category,
			Specifications: item.Specifications,
			Quantity:       item.Quantity,
			Price:          fmt.Sprintf("%.2f", item.Price),
			LineTotal:      item.LineTotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

const quoteTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Quote {{.QuoteNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #222; }
        .header { display: flex; justify-content: space-between; border-bottom: 2px solid #333; padding-bottom: 12px; }
        .company h1 { margin: 0; font-size: 22px; }
        .meta p, .company p { margin: 2px 0; font-size: 12px; }
        table.items { width: 100%; border-collapse: collapse; margin-top: 24px; font-size: 12px; }
        table.items th { background: #f2f2f2; text-align: left; padding: 8px; }
        table.items td { border-bottom: 1px solid #ddd; padding: 8px; vertical-align: top; }
        .num { text-align: right; }
        table.totals { margin-left: auto; margin-top: 16px; font-size: 13px; }
        table.totals td { padding: 4px 8px; }
        .grand { font-weight: bold; font-size: 15px; border-top: 2px solid #333; }
        .note { margin-top: 32px; font-size: 11px; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div class="meta">
            <p><strong>Quote #:</strong> {{.QuoteNumber}}</p>
            <p><strong>Date:</strong> {{.QuoteDate}}</p>
            <p><strong>Valid until:</strong> {{.ValidUntil}}</p>
        </div>
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Item</th>
                <th>Category</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td><strong>{{.Name}}</strong>{{if .Specifications}}<br><small>{{.Specifications}}</small>{{end}}</td>
                <td>{{.Category}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">${{.Price}}</td>
                <td class="num">${{.LineTotal}}</td>
            </tr>
            {{else}}
            <tr><td colspan="5">Your cart is empty.</td></tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr><td>Subtotal ({{.Totals.ItemCount}} items)</td><td class="num">${{.Totals.Subtotal}}</td></tr>
        <tr><td>Tax (8%)</td><td class="num">${{.Totals.Tax}}</td></tr>
        <tr><td>Shipping</td><td class="num">{{if .Totals.FreeShipping}}Free{{else}}${{.Totals.Shipping}}{{end}}</td></tr>
        <tr class="grand"><td>Total</td><td class="num">${{.Totals.Total}}</td></tr>
    </table>

    <p class="note">Prices are those in effect when each item was added to the cart.</p>
</body>
</html>
`
