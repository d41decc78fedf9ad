package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Mailer delivers verification email, best effort. Callers dispatch sends in
// the background; a failed send never fails the request that triggered it.
type Mailer interface {
	SendVerification(toEmail, username, verifyLink string) error
}

const verificationSubject = "Confirm your email"

var verificationTmpl = template.Must(template.New("verification").Parse(`<html>
<body>
<p>Hi {{.Username}},</p>
<p>Thanks for signing up. Please confirm your email address by following the link below.</p>
<p><a href="{{.VerifyLink}}">Confirm email</a></p>
<p>If you did not create an account, you can ignore this message.</p>
</body>
</html>`))

// SMTPMailer sends mail through an SMTP server over implicit TLS.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP creates a mailer for the given SMTP endpoint.
func NewSMTP(host string, port int, username, password, from string) *SMTPMailer {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = port == 465
	return &SMTPMailer{dialer: d, from: from}
}

// SendVerification renders and delivers the verification message.
func (m *SMTPMailer) SendVerification(toEmail, username, verifyLink string) error {
	var body bytes.Buffer
	data := struct {
		Username   string
		VerifyLink string
	}{Username: username, VerifyLink: verifyLink}
	if err := verificationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render verification mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", verificationSubject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}
