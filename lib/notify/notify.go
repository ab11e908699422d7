package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type Config struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

func (c Config) Enabled() bool {
	return c.Server != "" && len(c.To) > 0
}

// SendRunReport mails the rendered summary of a finished job.
func SendRunReport(cfg Config, job, body string) error {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Loyalty Rankings <%s>", cfg.EmailAddress)
	mail.To = cfg.To
	mail.Subject = fmt.Sprintf("loyalty-cli run report: %s", job)
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", cfg.Server, cfg.Port)
	err := mail.Send(addr, smtp.PlainAuth("", cfg.EmailAddress, cfg.Password, cfg.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		return mail.Send(addr, nil)
	}
	return err
}
