package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/oakhaven/prepschool/internal/app/models"
)

// Service defines the outbound email operations. Every send is best-effort:
// callers never treat a failure as fatal to the originating request.
type Service interface {
	SendApplicationNotification(app *models.Application) error
	SendContactNotification(msg *models.ContactMessage) error
	SendPasswordResetEmail(toEmail, toName, token string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	FromName        string
	FromEmail       string
	UseTLS          bool
	AdmissionsInbox string // mailbox notified of new applications and messages
	BaseURL         string // base URL used in reset links
}

type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates an SMTP-backed email service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{
		config: config,
		logger: logger,
	}
}

// SendApplicationNotification notifies the admissions mailbox of a new application
func (s *smtpService) SendApplicationNotification(app *models.Application) error {
	subject := fmt.Sprintf("New admissions application: %s %s (%s)", app.FirstName, app.LastName, app.GradeApplying)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New Application Received</h2>
				<p><strong>Applicant:</strong> %s %s</p>
				<p><strong>Grade applying for:</strong> %s</p>
				<p><strong>Parent/Guardian:</strong> %s</p>
				<p><strong>Email:</strong> %s</p>
				<p><strong>Phone:</strong> %s</p>
				<p>Log in to the admin dashboard to review this application.</p>
			</div>
		</body>
		</html>
	`, app.FirstName, app.LastName, app.GradeApplying, app.ParentName, app.Email, app.Phone)

	return s.sendHTMLEmail(s.config.AdmissionsInbox, subject, body)
}

// SendContactNotification notifies the admissions mailbox of a new contact message
func (s *smtpService) SendContactNotification(msg *models.ContactMessage) error {
	subject := fmt.Sprintf("New contact message: %s", msg.Subject)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New Contact Message</h2>
				<p><strong>From:</strong> %s &lt;%s&gt;</p>
				<p><strong>Subject:</strong> %s</p>
				<p>%s</p>
			</div>
		</body>
		</html>
	`, msg.Name, msg.Email, msg.Subject, msg.Message)

	return s.sendHTMLEmail(s.config.AdmissionsInbox, subject, body)
}

// SendPasswordResetEmail sends the plaintext reset token as a link.
// The token is valid for 10 minutes.
func (s *smtpService) SendPasswordResetEmail(toEmail, toName, token string) error {
	subject := "Password Reset Request"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset your portal password. Click the button below to choose a new one:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>

				<p>This link expires in 10 minutes. If you did not request a reset, you can ignore this email.</p>
			</div>
		</body>
		</html>
	`, toName, resetURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email. When SMTP credentials are not
// configured the message is logged instead, so development environments
// work without a mail server.
func (s *smtpService) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n",
		s.config.FromName, s.config.FromEmail, toEmail, subject)
	message := headers + "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		return s.sendWithTLS(serverAddress, auth, toEmail, message)
	}

	if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) sendWithTLS(serverAddress string, auth smtp.Auth, toEmail, message string) error {
	tlsConfig := &tls.Config{ServerName: s.config.Host}

	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	return w.Close()
}
