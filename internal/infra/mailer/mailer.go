// Package mailer renders order notifications as HTML and delivers them over SMTP.
package mailer

import (
	"bytes"
	"context"
	"html/template"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"order-saga/internal/event"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SubjectConfirmation = "Order Confirmation"
	SubjectCancellation = "Order Cancelled"
)

// SendFunc is smtp.SendMail with a context; SendMail is the production implementation.
type SendFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send SendFunc
	now  func() time.Time
}

func New(cfg config.SMTPConfig) *SMTPMailer {
	return NewWithSender(cfg, SendMail)
}

func NewWithSender(cfg config.SMTPConfig, send SendFunc) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: cfg.Addr(),
		from: cfg.From,
		auth: auth,
		send: send,
		now:  time.Now,
	}
}

type confirmationItem struct {
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, ev event.OrderCreated) error {
	items := make([]confirmationItem, len(ev.Items))
	for i, it := range ev.Items {
		items[i] = confirmationItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.UnitPrice.Mul(decimal.NewFromInt32(it.Quantity)),
		}
	}
	data := struct {
		OrderID     int64
		FirstName   string
		TotalAmount decimal.Decimal
		Items       []confirmationItem
	}{ev.OrderID, ev.FirstName, ev.TotalAmount, items}

	return m.deliver(ctx, ev.Email, SubjectConfirmation, confirmationTmpl, data)
}

func (m *SMTPMailer) SendOrderCancelled(ctx context.Context, ev event.OrderCancelled) error {
	return m.deliver(ctx, ev.Email, SubjectCancellation, cancellationTmpl, ev)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" || strings.ContainsAny(to, "\r\n") {
		return errs.Newf("invalid recipient %q", to)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errs.Wrapf(err, "render %s", tmpl.Name())
	}

	msg := m.compose(to, subject, body.Bytes())
	if err := m.send(ctx, m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return errs.Wrapf(err, "send %q to %s", subject, to)
	}
	return nil
}

func (m *SMTPMailer) compose(to, subject string, html []byte) []byte {
	var b bytes.Buffer
	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + m.now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("Message-ID: <" + uuid.NewString() + "@order-saga>\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.Write(html)
	return b.Bytes()
}
