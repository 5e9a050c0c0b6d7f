package intake

import (
	"bytes"
	"context"
	"io"
	"net/mail"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"payermatch/internal/core"
	"payermatch/internal/utils"
)

// SMTPIntake runs a statement mailbox: banks mail their CSV statement
// exports to it as attachments and every attached export is resolved on
// receipt.
type SMTPIntake struct {
	resolver
	text            *utils.TextProcessor
	listenAddr      string
	domain          string
	maxMessageBytes int64
	server          *smtp.Server
}

// NewSMTPIntake creates a new SMTP statement mailbox intake
func NewSMTPIntake(
	service *core.ContactResolver,
	sink core.RecordSink,
	text *utils.TextProcessor,
	logger *zap.Logger,
	listenAddr, domain string,
	maxMessageBytes int64,
) *SMTPIntake {
	return &SMTPIntake{
		resolver:        resolver{service: service, sink: sink, logger: logger},
		text:            text,
		listenAddr:      listenAddr,
		domain:          domain,
		maxMessageBytes: maxMessageBytes,
	}
}

// Start starts the SMTP server
func (f *SMTPIntake) Start() error {
	f.server = smtp.NewServer(&smtpBackend{intake: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = f.domain
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = f.maxMessageBytes
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP intake starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (f *SMTPIntake) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	intake *SMTPIntake
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		intake:     b.intake,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	intake     *SMTPIntake
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data handles the message data
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.intake.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.intake.logger.Error("Failed to parse statement mail", zap.Error(err))
		return err
	}

	attachments, err := extractCSVAttachments(msg)
	if err != nil {
		s.intake.logger.Error("Failed to extract statement attachments",
			zap.Error(err),
			zap.String("from", s.sender))
		return err
	}

	if len(attachments) == 0 {
		s.intake.logger.Warn("Statement mail without CSV attachment",
			zap.String("from", s.sender),
			zap.String("subject", msg.Header.Get("Subject")))
		return nil
	}

	for _, att := range attachments {
		records, err := ParseCSVRecords(bytes.NewReader(att.data), s.intake.text)
		if err != nil {
			s.intake.logger.Error("Failed to parse statement attachment",
				zap.String("attachment", att.filename),
				zap.String("from", s.sender),
				zap.Error(err))
			continue
		}

		stats := s.intake.processRecords(context.Background(), records, att.filename)
		s.intake.logger.Info("Statement attachment processed",
			append(stats.fields(att.filename), zap.String("from", s.sender))...)
	}

	return nil
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}
