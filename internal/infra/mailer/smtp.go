package mailer

import (
	"context"
	"crypto/tls"
	"net"
	"net/smtp"
	"time"

	"order-saga/internal/pkg/errs"
)

// SendMail performs the same exchange as smtp.SendMail but is bound to ctx. The dial
// honours ctx, and the connection deadline follows the ctx deadline or cancellation,
// so a stalled server cannot hold a consumer past its context.
func SendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return errs.Wrapf(err, "smtp address %q", addr)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return contextErr(ctx, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return contextErr(ctx, err)
	}
	defer c.Close()

	if err := exchange(c, host, a, from, to, msg); err != nil {
		return contextErr(ctx, err)
	}
	return nil
}

func exchange(c *smtp.Client, host string, a smtp.Auth, from string, to []string, msg []byte) error {
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errs.New("smtp server does not support AUTH")
		}
		if err := c.Auth(a); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// contextErr marks an I/O failure caused by the deadline or cancellation with ctx.Err().
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errs.Mark(err, ctxErr)
	}
	// the conn deadline can fire a moment before the ctx timer
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return errs.Mark(err, context.DeadlineExceeded)
	}
	return err
}
