package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendActivityReport(toEmail, period string, pdfBytes []byte) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendActivityReport(toEmail, period string, pdfBytes []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Activity report %s", period))

	body := fmt.Sprintf(`
		<h3>Activity report</h3>
		<p>Attached is your activity report for the period <strong>%s</strong>.</p>
		<p>The report lists every recorded task in the period with hours, rates and billing state.</p>
	`, period)
	m.SetBody("text/html", body)

	filename := fmt.Sprintf("activity-report-%s.pdf",
		strings.NewReplacer("/", "-", " ", "").Replace(period))
	m.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(pdfBytes))
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send activity report: %w", err)
	}
	return nil
}
