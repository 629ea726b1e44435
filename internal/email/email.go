// Package email sends installment-due reminders through a transactional SMTP
// provider.
package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// Sender delivers reminder mail over SMTP with plain auth.
type Sender struct {
	cfg *config.Config
	log *log.Logger
}

func NewSender(cfg *config.Config, logger *log.Logger) *Sender {
	return &Sender{cfg: cfg, log: logger.WithComponent(log.ComponentEmail)}
}

// SendInstallmentReminder mails a notice for one upcoming installment.
func (s *Sender) SendInstallmentReminder(e core.Expense) error {
	m := email.NewEmail()
	m.From = s.cfg.SenderEmail
	m.To = []string{s.cfg.ReminderTo}
	m.Subject = fmt.Sprintf("Upcoming installment: %s", e.Description)

	body := fmt.Sprintf(
		"An installment of %s is due on %s.\n\n"+
			"Item: %s\n"+
			"Installment: %d of %d\n",
		e.Amount.StringFixed(2),
		e.TransactionDate.Format("2006-01-02"),
		e.Description,
		e.InstallmentNo, e.InstallmentOf,
	)
	body += "\n— fintrack"
	m.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := m.Send(addr, auth); err != nil {
		s.log.Error("Failed to send reminder",
			log.FieldRecordID, e.ID,
			log.FieldError, err.Error())
		return fmt.Errorf("send reminder: %w", err)
	}

	s.log.Info("Reminder sent",
		log.FieldRecordID, e.ID,
		log.FieldDueDate, e.TransactionDate.Format("2006-01-02"))
	return nil
}
