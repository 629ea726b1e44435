package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// ReminderSender delivers one due-installment notice. The SMTP implementation
// lives in internal/email; tests use a recording fake.
type ReminderSender interface {
	SendInstallmentReminder(e core.Expense) error
}

// ReminderService finds installment rows falling due soon and notifies the
// user once per run. It keeps no state: the worker schedules it daily.
type ReminderService struct {
	store  store.DueLister
	sender ReminderSender
	window int // days ahead
	log    *log.Logger
}

func NewReminderService(s store.DueLister, sender ReminderSender, windowDays int, logger *log.Logger) *ReminderService {
	return &ReminderService{
		store:  s,
		sender: sender,
		window: windowDays,
		log:    logger.WithComponent(log.ComponentEmail),
	}
}

// Run sends a reminder for every installment due between now and now+window.
// A send failure skips the row but does not stop the run; the count of
// successfully sent reminders is returned.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (int, error) {
	if s.sender == nil {
		s.log.WarnContext(ctx, "No email sender configured, skipping reminder run")
		return 0, nil
	}

	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, s.window)

	due, err := s.store.ListInstallmentsDueBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("list due installments: %w", err)
	}

	sent := 0
	for _, e := range due {
		if err := s.sender.SendInstallmentReminder(e); err != nil {
			s.log.ErrorContext(ctx, "Failed to send reminder",
				log.FieldRecordID, e.ID,
				log.FieldDueDate, e.TransactionDate.Format("2006-01-02"),
				log.FieldError, err.Error())
			continue
		}
		sent++
	}

	s.log.InfoContext(ctx, "Reminder run complete", "due", len(due), "sent", sent)
	return sent, nil
}
