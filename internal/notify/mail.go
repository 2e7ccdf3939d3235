// Package notify sends the forum post out once it is written.
package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"achrip/internal/components/assert"
	"achrip/internal/components/telemetry"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_mailer_send = "mailer.send"
)

var tracer = telemetry.Tracer("achrip.notify")

type MailConfig struct {
	Host     string   `json:"host"`
	Port     int      `json:"port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
}

// Enabled is true once there is a server and somebody to send to.
func (c MailConfig) Enabled() bool {
	return c.Host != "" && len(c.To) > 0
}

func (c MailConfig) addr() string {
	port := c.Port
	if port == 0 {
		port = 587
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// SendFunc delivers a message, it has the signature of email.Email.Send.
type SendFunc = func(e *email.Email, addr string, auth smtp.Auth) error

type Mailer struct {
	config MailConfig
	send   SendFunc
	tel    telemetry.API
}

func NewMailer(config MailConfig, tel telemetry.API) Mailer {
	return NewMailerWith(config, tel, func(e *email.Email, addr string, auth smtp.Auth) error {
		return e.Send(addr, auth)
	})
}

func NewMailerWith(config MailConfig, tel telemetry.API, send SendFunc) Mailer {
	assert.NotNil(tel)
	assert.NotNil(send)
	return Mailer{
		config: config,
		send:   send,
		tel:    telemetry.NewScopedAPI("notify", tel),
	}
}

// Message builds the e-mail carrying the post.
func (m Mailer) Message(post string) *email.Email {
	e := email.NewEmail()
	e.From = m.config.From
	if e.From == "" {
		e.From = m.config.Username
	}
	e.To = m.config.To
	e.Subject = m.config.Subject
	if e.Subject == "" {
		e.Subject = "Achievement update"
	}
	e.Text = []byte(post)
	return e
}

// SendForumPost mails the post, failures are reported and returned.
func (m Mailer) SendForumPost(ctx context.Context, post string) error {
	_, span := tracer.Start(ctx, "Mailer.SendForumPost")
	defer span.End()
	span.SetAttributes(attribute.Int("recipients", len(m.config.To)))

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	err := m.send(m.Message(post), m.config.addr(), auth)
	if err != nil {
		m.tel.ReportWarning(report_mailer_send, err, m.config.addr())
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("send forum post: %w", err)
	}
	return nil
}
