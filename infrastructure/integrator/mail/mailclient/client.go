package mailclient

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

// Sender envia emails transacionais pelo provedor configurado
type Sender interface {
	Send(ctx context.Context, email domain.Email) (string, error)
}

type MailClient struct {
	cfg    config.Mail
	client *mail.Client
}

// NewClient cria o client SMTP autenticado com a API key do provedor.
// A conexão só é aberta a cada envio.
func NewClient(cfg config.Mail) (*MailClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mailclient: MAIL_API_KEY não configurada")
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.APIKey),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mailclient: erro ao criar client SMTP")
	}

	return &MailClient{cfg: cfg, client: client}, nil
}

func (c *MailClient) Send(ctx context.Context, email domain.Email) (string, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"recipients": email.To,
		"subject":    email.Subject,
	})

	msg, err := buildMessage(c.cfg, email)
	if err != nil {
		return "", err
	}

	logger.Debug("Enviando email")

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		logger.WithError(err).Error("Provedor de email recusou o envio")
		return "", errors.Wrap(err, "mailclient: erro ao enviar email")
	}

	return msg.GetMessageID(), nil
}

// buildMessage monta a mensagem MIME com corpo HTML, alternativa texto e anexos
func buildMessage(cfg config.Mail, email domain.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if email.From != "" {
		if err := msg.From(email.From); err != nil {
			return nil, errors.Wrap(err, "mailclient: remetente inválido")
		}
	} else if err := msg.FromFormat(cfg.FromName, cfg.From); err != nil {
		return nil, errors.Wrap(err, "mailclient: remetente inválido")
	}

	if len(email.To) == 0 {
		return nil, fmt.Errorf("mailclient: nenhum destinatário informado")
	}
	if err := msg.To(email.To...); err != nil {
		return nil, errors.Wrap(err, "mailclient: destinatário inválido")
	}

	msg.Subject(email.Subject)
	msg.SetMessageID()
	msg.SetDate()

	msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)
	if email.TextBody != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, email.TextBody)
	}

	for _, attachment := range email.Attachments {
		name := attachment.Filename
		if name == "" {
			name = filepath.Base(attachment.Path)
		}

		opts := []mail.FileOption{mail.WithFileName(name)}
		if attachment.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(attachment.ContentType)))
		}
		msg.AttachFile(attachment.Path, opts...)
	}

	return msg, nil
}
