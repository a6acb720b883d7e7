package pdf

import (
	"bytes"
	"fmt"
	"image/png"

	"ms-storefront/internal/models"
	"ms-storefront/internal/pricing"
	"ms-storefront/internal/tickets/qr"

	"github.com/signintech/gopdf"
)

// Generator renders the PDF ticket attached to ticket-order confirmation
// emails. Satisfies confirmation.PDFGenerator.
type Generator struct {
	QR       *qr.Generator
	FontPath string
}

func NewGenerator(qrGen *qr.Generator, fontPath string) *Generator {
	return &Generator{QR: qrGen, FontPath: fontPath}
}

func (g *Generator) TicketPDF(payload models.ConfirmationPayload) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	err := pdf.AddTTFFont("dejavu", g.FontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	err = pdf.SetFont("dejavu", "", 14)
	if err != nil {
		return nil, fmt.Errorf("failed to set font: %w", err)
	}

	addHeader(pdf, payload.EventTitle)

	pdf.SetY(60)
	addOrderInfo(pdf, payload)

	if g.QR != nil {
		qrCode, err := g.QR.EncryptedPNG(qr.Claim{
			OrderID:    payload.OrderID,
			EventID:    payload.EventID,
			TicketType: payload.TicketType,
			TierTitle:  payload.TierTitle,
			Quantity:   payload.Quantity,
			Email:      payload.CustomerEmail,
		})
		if err == nil {
			pdf.SetY(pdf.GetY() + 20)
			addQRCode(pdf, qrCode)
		}
	}

	pdf.SetY(260)
	addFooter(pdf)

	var buf bytes.Buffer
	err = pdf.Write(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func addHeader(pdf *gopdf.GoPdf, eventTitle string) {
	pdf.SetX(40)
	pdf.SetY(30)
	pdf.Cell(nil, "EVENT TICKET - "+eventTitle)
}

func addOrderInfo(pdf *gopdf.GoPdf, payload models.ConfirmationPayload) {
	info := []struct {
		Label string
		Value string
	}{
		{"Order ID", payload.OrderID},
		{"Name", payload.CustomerName},
		{"Event", payload.EventTitle},
		{"Ticket Type", payload.TicketType},
		{"Tier", payload.TierTitle},
		{"Quantity", fmt.Sprintf("%d", payload.Quantity)},
		{"Total Paid", "$" + pricing.FormatAmount(payload.Total)},
	}

	for _, item := range info {
		pdf.Cell(nil, item.Label+": "+item.Value)
		pdf.Br(20)
	}
}

func addQRCode(pdf *gopdf.GoPdf, qrCode []byte) {
	img, err := png.Decode(bytes.NewReader(qrCode))
	if err != nil {
		pdf.Cell(nil, "Failed to load QR code")
		return
	}

	rect := &gopdf.Rect{W: 100, H: 100}
	err = pdf.ImageFrom(img, 100, pdf.GetY(), rect)
	if err != nil {
		pdf.Cell(nil, "Failed to draw QR code")
	}
}

func addFooter(pdf *gopdf.GoPdf) {
	pdf.SetX(50)
	pdf.Cell(nil, "Present this ticket at the venue entrance.")
}
