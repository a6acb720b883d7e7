package confirmation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ms-storefront/internal/config"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
)

// PDFGenerator renders the ticket document attached to ticket-order
// confirmations.
type PDFGenerator interface {
	TicketPDF(payload models.ConfirmationPayload) ([]byte, error)
}

// Sender delivers order confirmations through the remote mailer function.
// It never returns an error to the caller: every delivery problem is
// absorbed into the outcome flags so checkout cannot block on email.
type Sender struct {
	Client   *http.Client
	Endpoint string
	From     string
	PDF      PDFGenerator
	Logger   *logger.Logger
}

func NewSender(cfg config.MailerConfig, pdf PDFGenerator, log *logger.Logger) *Sender {
	return &Sender{
		Client:   &http.Client{Timeout: cfg.Timeout},
		Endpoint: cfg.Endpoint,
		From:     cfg.FromAddress,
		PDF:      pdf,
		Logger:   log,
	}
}

// Send posts the payload to the mailer function. A remote-reported domain
// verification error counts as a simulated send, which the UI treats as
// success; anything else that goes wrong flips EmailError only.
func (s *Sender) Send(ctx context.Context, payload models.ConfirmationPayload) models.ConfirmationOutcome {
	if payload.OrderType == models.OrderTypeTicket && s.PDF != nil {
		pdfBytes, err := s.PDF.TicketPDF(payload)
		if err != nil {
			s.Logger.Warn("MAILER", fmt.Sprintf("ticket PDF generation failed for order %s: %v", payload.OrderID, err))
		} else {
			payload.AttachmentPDF = base64.StdEncoding.EncodeToString(pdfBytes)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Error("MAILER", fmt.Sprintf("payload marshal failed for order %s: %v", payload.OrderID, err))
		return models.ConfirmationOutcome{EmailError: true}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		s.Logger.Error("MAILER", fmt.Sprintf("request build failed for order %s: %v", payload.OrderID, err))
		return models.ConfirmationOutcome{EmailError: true}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-From-Address", s.From)

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Logger.Error("MAILER", fmt.Sprintf("confirmation call failed for order %s: %v", payload.OrderID, err))
		return models.ConfirmationOutcome{EmailError: true}
	}
	defer resp.Body.Close()

	var result models.ConfirmationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.Logger.Error("MAILER", fmt.Sprintf("confirmation response decode failed for order %s: %v", payload.OrderID, err))
		return models.ConfirmationOutcome{EmailError: true}
	}

	if result.Success {
		if result.Simulation {
			s.Logger.Info("MAILER", fmt.Sprintf("confirmation for order %s sent in simulation mode", payload.OrderID))
			return models.ConfirmationOutcome{SimulatedEmail: true}
		}
		s.Logger.Info("MAILER", fmt.Sprintf("confirmation %s sent for order %s", result.ID, payload.OrderID))
		return models.ConfirmationOutcome{EmailSent: true}
	}

	if strings.Contains(strings.ToLower(result.Error), "domain") {
		s.Logger.Warn("MAILER", fmt.Sprintf("confirmation for order %s downgraded to simulation: %s", payload.OrderID, result.Error))
		return models.ConfirmationOutcome{SimulatedEmail: true}
	}

	s.Logger.Error("MAILER", fmt.Sprintf("confirmation for order %s failed: status %d, %s", payload.OrderID, resp.StatusCode, result.Error))
	return models.ConfirmationOutcome{EmailError: true}
}
