package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) send(to []string, subject string, body string) error {
	if !s.Enabled {
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + strings.Join(to, ","),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	return smtp.SendMail(addr, auth, s.From, to, []byte(msg))
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}
	go func() {
		if err := s.send(to, subject, body); err != nil {
			log.Printf("Failed to send email %q to %v: %v", subject, to, err)
		}
	}()
}

func (s *MailService) SendVerificationEmail(to string, code string) {
	s.sendAsync([]string{to}, "Verify Your OnlyPaws Email",
		fmt.Sprintf("Your verification code is: %s", code))
}

func (s *MailService) SendPasswordResetEmail(to string, code string) {
	s.sendAsync([]string{to}, "Reset Your OnlyPaws Password",
		fmt.Sprintf("Your password reset code is: %s", code))
}

// SendEmailChangeCode is synchronous; the email-change flow reports send
// failures back to the caller.
func (s *MailService) SendEmailChangeCode(to string, code string) error {
	return s.send([]string{to}, "Update Your OnlyPaws Email",
		fmt.Sprintf("Your email update code is: %s", code))
}

func (s *MailService) SendEmailChangedNotice(newEmail string, oldEmail string) {
	s.sendAsync([]string{newEmail}, "Email change successful",
		"Your email has been successfully updated.")
	s.sendAsync([]string{oldEmail}, "Your email has been changed",
		fmt.Sprintf("Your email has been changed to %s.", newEmail))
}
