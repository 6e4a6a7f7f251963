package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dealdesk/config"
	"dealdesk/logger"
	"dealdesk/metrics"
	"dealdesk/models"
	"dealdesk/repository"
	"dealdesk/templates"
	"dealdesk/utils"
)

// DocumentLabels are the fixed captions of a bill document in one language
type DocumentLabels struct {
	Number, Date, Customer, TaxID, Phone                      string
	Description, Quantity, UnitPrice, LineTotal               string
	Subtotal, VAT, Total, Notes, Signature, CustomerSignature string
	Titles                                                    map[string]string
}

var documentLabels = map[string]DocumentLabels{
	"en": {
		Number: "No.", Date: "Date", Customer: "Customer", TaxID: "Tax ID", Phone: "Phone",
		Description: "Description", Quantity: "Qty", UnitPrice: "Unit price", LineTotal: "Total",
		Subtotal: "Subtotal", VAT: "VAT", Total: "Total to pay", Notes: "Notes",
		Signature: "Authorized signature", CustomerSignature: "Customer signature",
		Titles: map[string]string{
			models.BillTypeGeneral:           "Bill",
			models.BillTypeReceiptOnly:       "Receipt",
			models.BillTypeTaxInvoice:        "Tax Invoice",
			models.BillTypeTaxInvoiceReceipt: "Tax Invoice / Receipt",
		},
	},
	"he": {
		Number: "מס'", Date: "תאריך", Customer: "לקוח", TaxID: "ע.מ / ח.פ", Phone: "טלפון",
		Description: "תיאור", Quantity: "כמות", UnitPrice: "מחיר יחידה", LineTotal: "סה\"כ",
		Subtotal: "סכום ביניים", VAT: "מע\"מ", Total: "סה\"כ לתשלום", Notes: "הערות",
		Signature: "חתימה מורשית", CustomerSignature: "חתימת הלקוח",
		Titles: map[string]string{
			models.BillTypeGeneral:           "חשבון",
			models.BillTypeReceiptOnly:       "קבלה",
			models.BillTypeTaxInvoice:        "חשבונית מס",
			models.BillTypeTaxInvoiceReceipt: "חשבונית מס / קבלה",
		},
	},
	"ar": {
		Number: "رقم", Date: "التاريخ", Customer: "الزبون", TaxID: "رقم ضريبي", Phone: "هاتف",
		Description: "الوصف", Quantity: "الكمية", UnitPrice: "سعر الوحدة", LineTotal: "المجموع",
		Subtotal: "المجموع الفرعي", VAT: "ضريبة القيمة المضافة", Total: "المجموع للدفع", Notes: "ملاحظات",
		Signature: "توقيع معتمد", CustomerSignature: "توقيع الزبون",
		Titles: map[string]string{
			models.BillTypeGeneral:           "فاتورة",
			models.BillTypeReceiptOnly:       "إيصال",
			models.BillTypeTaxInvoice:        "فاتورة ضريبية",
			models.BillTypeTaxInvoiceReceipt: "فاتورة ضريبية / إيصال",
		},
	},
}

// BillLine is a formatted line of the items table
type BillLine struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

// BillDocument is the view model the bill template renders
type BillDocument struct {
	Lang, Dir     string
	BillType      string
	Title         string
	Number        string
	IssuedAt      string
	CustomerName  string
	CustomerTaxID string
	Notes         string
	Company       config.Company
	Labels        DocumentLabels
	Lines         []BillLine
	TaxBearing    bool
	VATPercent    string
	Subtotal      string
	VAT           string
	Total         string

	SubtotalAmount float64
	VATAmount      float64
	TotalAmount    float64
}

// DocumentService renders bills to HTML and PDF
type DocumentService struct {
	bills    repository.BillRepositoryInterface
	pdf      PDFRendererInterface
	company  config.Company
	document config.Document
	tmpl     *template.Template
	log      *zap.SugaredLogger
}

// NewDocumentService parses the embedded bill template
func NewDocumentService(
	bills repository.BillRepositoryInterface,
	pdf PDFRendererInterface,
	company config.Company,
	document config.Document,
	log *zap.SugaredLogger,
) (*DocumentService, error) {
	tmpl, err := template.ParseFS(templates.FS, templates.Bill)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &DocumentService{
		bills:    bills,
		pdf:      pdf,
		company:  company,
		document: document,
		tmpl:     tmpl,
		log:      logger.OrGlobal(log),
	}, nil
}

// BuildDocument computes the financial summary and formats every field of bill for lang
func (s *DocumentService) BuildDocument(bill *models.Bill, lang string) BillDocument {
	billType, known := utils.NormalizeBillType(bill.BillType)
	if !known {
		s.log.Warnf("⚠️ Unknown bill_type %q on bill %d, rendering as %s", bill.BillType, bill.ID, billType)
	}

	lang = strings.ToLower(strings.TrimSpace(lang))
	labels, ok := documentLabels[lang]
	if !ok {
		lang = "en"
		labels = documentLabels[lang]
	}
	dir := "ltr"
	if utils.IsRTL(lang) {
		dir = "rtl"
	}

	symbol := s.document.Currency
	doc := BillDocument{
		Lang:          lang,
		Dir:           dir,
		BillType:      billType,
		Title:         labels.Titles[billType],
		Number:        bill.Number,
		IssuedAt:      bill.IssuedAt.Format("02/01/2006"),
		CustomerName:  bill.CustomerName,
		CustomerTaxID: bill.CustomerTaxID,
		Notes:         bill.Notes,
		Company:       s.company,
		Labels:        labels,
		TaxBearing:    utils.IsTaxBearing(billType),
	}

	for _, item := range bill.Items {
		lineTotal := utils.RoundMoney(item.Quantity * item.UnitPrice)
		doc.SubtotalAmount += lineTotal
		doc.Lines = append(doc.Lines, BillLine{
			Description: item.Description,
			Quantity:    strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			UnitPrice:   utils.FormatMoney(item.UnitPrice, symbol),
			Total:       utils.FormatMoney(lineTotal, symbol),
		})
	}

	doc.SubtotalAmount = utils.RoundMoney(doc.SubtotalAmount)
	if doc.TaxBearing {
		doc.VATAmount = utils.RoundMoney(doc.SubtotalAmount * s.document.VATRate)
		doc.VATPercent = strconv.FormatFloat(s.document.VATRate*100, 'f', -1, 64) + "%"
	}
	doc.TotalAmount = utils.RoundMoney(doc.SubtotalAmount + doc.VATAmount)

	doc.Subtotal = utils.FormatMoney(doc.SubtotalAmount, symbol)
	doc.VAT = utils.FormatMoney(doc.VATAmount, symbol)
	doc.Total = utils.FormatMoney(doc.TotalAmount, symbol)
	return doc
}

// RenderHTML loads bill id and executes the template
func (s *DocumentService) RenderHTML(ctx context.Context, id int64, lang string) (string, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	doc := s.BuildDocument(bill, lang)

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	metrics.DocumentsRendered.WithLabelValues(doc.BillType).Inc()
	return buf.String(), nil
}

// RenderPDF renders bill id and prints it to PDF
func (s *DocumentService) RenderPDF(ctx context.Context, id int64, lang string) ([]byte, error) {
	html, err := s.RenderHTML(ctx, id, lang)
	if err != nil {
		return nil, err
	}

	pdf, err := s.pdf.Render(ctx, html)
	if err != nil {
		s.log.Errorf("❌ PDF generation for bill %d failed: %v", id, err)
		return nil, err
	}
	s.log.Infof("📄 Bill %d rendered to PDF (%d bytes)", id, len(pdf))
	return pdf, nil
}
