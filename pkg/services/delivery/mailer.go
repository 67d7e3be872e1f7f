package delivery

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
)

type Message struct {
	AccountID  int64
	Family     domain.ReportFamily
	To         []string
	Subject    string
	Body       string
	Attachment *domain.Artifact
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	settings SMTPSettings
}

func NewSMTPMailer(settings SMTPSettings) Mailer {
	return &smtpMailer{settings: settings}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	logger := zerolog.Ctx(ctx)

	e, err := buildEmail(m.settings.From, msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.settings.Username != "" {
		auth = smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
	}

	addr := m.settings.Host + ":" + strconv.Itoa(m.settings.Port)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

func buildEmail(from string, msg Message) (*email.Email, error) {
	e := email.NewEmail()
	e.From = from
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	if a := msg.Attachment; a != nil {
		if _, err := e.Attach(bytes.NewReader(a.Content), a.Filename, a.ContentType); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Filename, err)
		}
	}
	return e, nil
}
