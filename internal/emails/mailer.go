// Package emails sends candidate-facing notifications for interview
// scheduling, feedback, and results. When SMTP is unconfigured, sends are
// skipped silently so the calling flow never fails on mail delivery.
package emails

import (
	"os"
	"strconv"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
	hook   func(to, subject, htmlBody string)
}

// SetSendHook replaces actual delivery (used in tests).
func (m *Mailer) SetSendHook(fn func(to, subject, htmlBody string)) {
	m.hook = fn
}

// NewMailerFromEnv reads SMTP_HOST/SMTP_PORT/SMTP_USER/SMTP_PASS/SMTP_FROM.
// A mailer without a host is a no-op mailer.
func NewMailerFromEnv(log *zap.Logger) *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Warn("SMTP not configured, email notifications disabled")
		return &Mailer{log: log}
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}
	user := os.Getenv("SMTP_USER")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, os.Getenv("SMTP_PASS")),
		from:   from,
		log:    log,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.hook != nil {
		m.hook(to, subject, htmlBody)
		return nil
	}
	if m.dialer == nil {
		m.log.Info("email skipped, SMTP not configured", zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("failed to send email", zap.String("to", to), zap.Error(err))
		return err
	}
	m.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// SendInterviewScheduled notifies a candidate that an interview has been
// booked.
func (m *Mailer) SendInterviewScheduled(to string, data ScheduledData) error {
	body, err := render(scheduledTmpl, data)
	if err != nil {
		return err
	}
	return m.send(to, "Interview Scheduled: "+data.InterviewTitle, body)
}

// SendFeedbackAdded notifies a candidate that an interviewer left feedback
// and a pass/fail decision.
func (m *Mailer) SendFeedbackAdded(to string, data FeedbackData) error {
	body, err := render(feedbackTmpl, data)
	if err != nil {
		return err
	}
	return m.send(to, "Interview Feedback: "+data.InterviewTitle, body)
}

// SendInterviewResult notifies a candidate of the final result and rating.
func (m *Mailer) SendInterviewResult(to string, data ResultData) error {
	body, err := render(resultTmpl, data)
	if err != nil {
		return err
	}
	return m.send(to, "Interview Result: "+data.InterviewTitle, body)
}
