package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func smtpDialer() *gomail.Dialer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)
}

// SendEmail sends an HTML email using the configured SMTP server.
func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := smtpDialer().DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendVerificationEmail sends the email-verification link after signup.
func SendVerificationEmail(to, token string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to StoreCart!</h2>
		<p>Please verify your email address by clicking the link below:</p>
		<p><a href="%s/verify-email?token=%s">Verify Email</a></p>
		<p>This link will expire in 24 hours.</p>
		<p>If you didn't create an account, please ignore this email.</p>
	`, os.Getenv("FRONTEND_URL"), token)

	return SendEmail(to, "Verify your StoreCart email", body)
}

// SupportAcknowledgement builds the subject and body for the ticket
// confirmation email.
func SupportAcknowledgement(ticketSubject string, ticketID uint) (subject, body string) {
	subject = fmt.Sprintf("Support ticket #%d received", ticketID)
	body = fmt.Sprintf(`
		<h2>We received your request</h2>
		<p>Your support ticket <b>#%d</b> ("%s") has been created.</p>
		<p>Our team will get back to you shortly.</p>
	`, ticketID, ticketSubject)
	return subject, body
}

// SendSupportAcknowledgement confirms a support ticket was received.
func SendSupportAcknowledgement(to, ticketSubject string, ticketID uint) error {
	subject, body := SupportAcknowledgement(ticketSubject, ticketID)
	return SendEmail(to, subject, body)
}
