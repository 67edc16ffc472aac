package sender

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	texttemplate "text/template"

	"beadshop/config"

	gopkgmail "gopkg.in/gomail.v2"
)

// Имена шаблонов писем. Для каждого в TMPLDir лежат <name>.html и <name>.txt.
const (
	TemplateOrderCreated  = "order_created"
	TemplateAdminNewOrder = "admin_new_order"
)

// KnownTemplate сообщает, есть ли у notifier такой шаблон.
func KnownTemplate(name string) bool {
	switch name {
	case TemplateOrderCreated, TemplateAdminNewOrder:
		return true
	}
	return false
}

type EmailNotification struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

type EmailSender struct {
	cfg *config.NotifierConfig
}

func NewEmailSender(cfg *config.NotifierConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

func (s *EmailSender) SendEmail(n EmailNotification) error {
	htmlBody, err := s.renderHTML(n.Template, n.Data)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	plainBody, err := s.renderPlain(n.Template, n.Data)
	if err != nil {
		return fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	d := gopkgmail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	d.SSL = true
	return d.DialAndSend(m)
}

func (s *EmailSender) renderHTML(tmplName string, data map[string]any) (string, error) {
	path := filepath.Join(s.cfg.TMPLDir, tmplName+".html")
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(tmplName).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *EmailSender) renderPlain(tmplName string, data map[string]any) (string, error) {
	path := filepath.Join(s.cfg.TMPLDir, tmplName+".txt")
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	tmpl, err := texttemplate.New(tmplName).Parse(string(content))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
