package alert

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"
)

type Config struct {
	SmtpHost string `json:"smtp_host"`
	SmtpPort int    `json:"smtp_port"`
	SmtpUser string `json:"smtp_user"`
	SmtpPass string `json:"smtp_pass"`
	To       string `json:"to"`
	From     string `json:"from"`
}

func (c Config) enabled() bool {
	return c.SmtpHost != "" && c.To != ""
}

// Notify sends a plain-text failure alert. Alerting is best effort: an
// unconfigured or unreachable SMTP host is logged and swallowed so it can
// never mask the error being reported.
func Notify(cfg Config, subject, body string) {
	if !cfg.enabled() {
		slog.Debug("alerting not configured, skipping", "subject", subject)
		return
	}
	if cfg.SmtpPort == 0 {
		cfg.SmtpPort = 587
	}
	if cfg.From == "" {
		cfg.From = "alerts@example.org"
	}

	e := email.NewEmail()
	e.From = cfg.From
	e.To = []string{cfg.To}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", cfg.SmtpHost, cfg.SmtpPort)
	err := e.Send(addr, smtp.PlainAuth("", cfg.SmtpUser, cfg.SmtpPass, cfg.SmtpHost))
	if err != nil {
		slog.Error("failed to send alert email", "err", err, "subject", subject)
		return
	}
	slog.Info("sent alert email", "to", cfg.To, "subject", subject)
}
