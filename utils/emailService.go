package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"podlearn/config"
)

// Mailer sends transactional emails over SMTP. All sends are best-effort;
// callers log failures and move on.
type Mailer struct {
	host   string
	port   string
	sender string
	pass   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:   "smtp.gmail.com",
		port:   "587",
		sender: cfg.EmailSender,
		pass:   cfg.EmailPassword,
	}
}

// Enabled reports whether a sender address is configured. Send is a no-op
// when it is not.
func (m *Mailer) Enabled() bool {
	return m.sender != ""
}

// Send delivers an HTML email
func (m *Mailer) Send(to []string, subject string, htmlBody string) error {
	if m.sender == "" {
		log.Println("Email sender not configured, skipping send")
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: PodLearn <%s>\r\n", m.sender)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.sender, m.pass, m.host)

	if err := smtp.SendMail(m.host+":"+m.port, auth, m.sender, to, []byte(msg)); err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

// SendPurchaseReceipt mails a settlement confirmation.
func (m *Mailer) SendPurchaseReceipt(email, name, itemTitle string, amount float64, currency string) error {
	subject := "Your PodLearn purchase receipt"
	body := emailTemplate("Purchase Confirmed", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment of <strong>%.2f %s</strong> for <strong>%s</strong> has been received.</p>
		<p>The content is now unlocked in your library.</p>`,
		name, amount, currency, itemTitle))
	return m.Send([]string{email}, subject, body)
}

// SendSubscriptionExpiryReminder warns before the current period ends.
func (m *Mailer) SendSubscriptionExpiryReminder(email, name string, expiresAt time.Time) error {
	subject := "Your PodLearn subscription is expiring soon"
	body := emailTemplate("Subscription Expiring Soon", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your subscription expires on <strong>%s</strong>.</p>
		<p>Renew before then to keep full access to all podcasts, reports and quizzes.</p>`,
		name, expiresAt.Format("January 2, 2006")))
	return m.Send([]string{email}, subject, body)
}

// SendCertificateIssued notifies the user a certificate is ready.
func (m *Mailer) SendCertificateIssued(email, name, contentTitle string) error {
	subject := "Your PodLearn certificate is ready"
	body := emailTemplate("Certificate Issued", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You passed the quiz for <strong>%s</strong>.</p>
		<p>Your certificate is available for download from your library.</p>`,
		name, contentTitle))
	return m.Send([]string{email}, subject, body)
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1D3557; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1D3557; line-height: 1.6; }
			.footer { padding: 20px; text-align: center; color: #999; font-size: 12px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">PodLearn &middot; This is an automated message.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
