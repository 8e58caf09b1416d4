package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendApprovalEmail(ctx context.Context, to, name, tempPassword string) error
	SendRejectionEmail(ctx context.Context, to, name, reason string) error
	SendNewsletterIssue(ctx context.Context, to, subject, body string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	appName  string
}

func NewSMTPMailer(host string, port int, username, password, from, appName string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		appName:  appName,
	}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) SendApprovalEmail(_ context.Context, to, name, tempPassword string) error {
	subject := fmt.Sprintf("Welcome to %s!", m.appName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour application has been approved — welcome aboard!\n\n"+
			"You can sign in with this temporary password:\n\n%s\n\n"+
			"Please change it after your first login.\n\nSee you at rehearsal,\n%s",
		name, tempPassword, m.appName)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) SendRejectionEmail(_ context.Context, to, name, reason string) error {
	subject := fmt.Sprintf("Your application to %s", m.appName)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe are sorry to inform you that your application was not accepted.\n\n"+
			"Reason: %s\n\nYou are welcome to apply again next season.\n\n%s",
		name, reason, m.appName)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) SendNewsletterIssue(_ context.Context, to, subject, body string) error {
	return m.send(to, subject, body)
}
