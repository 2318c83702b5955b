package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/FACorreiaa/realestate-ads/config"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends moderation mail. With no SMTP host configured it only logs.
type Mailer struct {
	dialer     sender
	from       string
	moderators []string
	logger     *slog.Logger
}

func NewMailer(cfg config.MailConfig, logger *slog.Logger) *Mailer {
	m := &Mailer{
		from:       cfg.From,
		moderators: cfg.Moderators,
		logger:     logger,
	}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// NotifyReport mails every moderator about a report on a.
func (m *Mailer) NotifyReport(ctx context.Context, a *types.Announcement, report *types.Report) error {
	if len(m.moderators) == 0 {
		return nil
	}
	msg := m.reportMessage(a, report)
	if m.dialer == nil {
		m.logger.InfoContext(ctx, "Mail disabled, skipping report notification",
			slog.String("report_id", report.ID.String()))
		return nil
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send report notification: %w", err)
	}
	m.logger.InfoContext(ctx, "Report notification sent",
		slog.String("report_id", report.ID.String()),
		slog.Int("recipients", len(m.moderators)),
	)
	return nil
}

func (m *Mailer) reportMessage(a *types.Announcement, report *types.Report) *gomail.Message {
	var body strings.Builder
	body.WriteString("An announcement was reported.\n\n")
	fmt.Fprintf(&body, "Title: %s\n", a.Title)
	fmt.Fprintf(&body, "Announcement: %s\n", a.ID)
	fmt.Fprintf(&body, "Reporter: %s\n", report.ReporterID)
	fmt.Fprintf(&body, "Reason: %s\n", report.Reason)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.moderators...)
	msg.SetHeader("Subject", "Announcement reported: "+a.Title)
	msg.SetBody("text/plain", body.String())
	return msg
}
