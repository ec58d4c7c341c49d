package delivering

import (
	"context"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/integrator/mail/mailclient"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/alokyadav9045/travellr-sub002/pkg/utils"
)

const pdfContentType = "application/pdf"

// Deliverer envia um relatório renderizado por email
type Deliverer interface {
	Deliver(ctx context.Context, report *domain.Report, recipients []string) (*domain.DeliveryRecord, error)
}

type PDFWriter interface {
	WriteTempFile(report *domain.Report) (string, error)
}

type BodyRenderer interface {
	Render(report *domain.Report) (string, error)
	RenderText(report *domain.Report) string
}

type DeliveryService struct {
	sender mailclient.Sender
	pdf    PDFWriter
	body   BodyRenderer
	now    func() time.Time
	remove func(string) error
}

func NewDeliveryService(sender mailclient.Sender, pdf PDFWriter, body BodyRenderer) *DeliveryService {
	return &DeliveryService{
		sender: sender,
		pdf:    pdf,
		body:   body,
		now:    time.Now,
		remove: os.Remove,
	}
}

// Deliver gera o PDF temporário, envia o email e remove o arquivo em qualquer caminho.
// Erros do provedor são logados e retornados sem nova tentativa.
func (s *DeliveryService) Deliver(ctx context.Context, report *domain.Report, recipients []string) (*domain.DeliveryRecord, error) {
	to, err := NormalizeRecipients(recipients)
	if err != nil {
		return nil, NewDeliveryError(ErrInvalidRecipients, apiErrors.ErrInvalidRecipients, err)
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"report_id":   report.ID,
		"report_type": report.Type,
		"recipients":  strings.Join(to, ","),
	})

	record := &domain.DeliveryRecord{
		ReportID:   report.ID,
		ReportType: report.Type,
		Recipients: to,
	}

	path, err := s.pdf.WriteTempFile(report)
	if err != nil {
		logger.WithError(err).Error("Erro ao gerar PDF do relatório")
		return nil, NewDeliveryError(ErrRenderFailed, apiErrors.ErrRenderFailed, err)
	}
	record.FilePath = path
	defer s.cleanup(logger, path)

	htmlBody, err := s.body.Render(report)
	if err != nil {
		logger.WithError(err).Error("Erro ao gerar corpo HTML do relatório")
		return nil, NewDeliveryError(ErrRenderFailed, apiErrors.ErrRenderFailed, err)
	}

	email := domain.Email{
		To:       to,
		Subject:  fmt.Sprintf("%s: %s", report.Title, report.Period.String()),
		HTMLBody: htmlBody,
		TextBody: s.body.RenderText(report),
		Attachments: []domain.Attachment{{
			Path:        path,
			Filename:    AttachmentName(report),
			ContentType: pdfContentType,
		}},
	}

	messageID, err := s.sender.Send(ctx, email)
	if err != nil {
		logger.WithError(err).Error("Erro ao enviar relatório por email")
		record.Error = err.Error()
		return record, NewDeliveryError(ErrSendFailed, apiErrors.ErrExternalService, err)
	}

	sentAt := s.now().UTC()
	record.MessageID = messageID
	record.SentAt = &sentAt

	logger.Info("Relatório enviado por email")
	return record, nil
}

func (s *DeliveryService) cleanup(logger log.Logger, path string) {
	if err := s.remove(path); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warnf("Não foi possível remover o arquivo temporário %s", path)
	}
}

// AttachmentName é o nome do PDF visto pelo destinatário
func AttachmentName(report *domain.Report) string {
	return fmt.Sprintf("%s-report_%s_%s.pdf",
		report.Type,
		report.Period.Start.Format(utils.DateLayout),
		report.Period.End.Format(utils.DateLayout),
	)
}

// NormalizeRecipients valida os endereços e remove duplicados mantendo a ordem
func NormalizeRecipients(recipients []string) ([]string, error) {
	seen := make(map[string]bool, len(recipients))
	out := make([]string, 0, len(recipients))

	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}

		addr, err := mail.ParseAddress(r)
		if err != nil {
			return nil, fmt.Errorf("invalid email address %q", r)
		}

		key := strings.ToLower(addr.Address)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, addr.Address)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	return out, nil
}
