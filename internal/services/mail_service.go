package services

import (
	"fmt"
	"html/template"
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
	SiteURL  string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}

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
		SiteURL:  siteURL,
		Enabled:  enabled,
	}
}

// sendAsync dispatches from a goroutine. Delivery failures are logged
// and never reach the caller: by the time mail goes out the database
// write has already committed.
func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: PinHub <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("Email sent to %v: %s", to, subject)
		}
	}()
}

var confirmTmpl = template.Must(template.New("confirm").Parse(`
<p>Welcome {{.Name}}!</p>
<p>Please confirm your email by <a href="{{.Link}}">clicking here</a>.</p>
<p>If you did not create this account, you can ignore this message.</p>`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>To reset your password, <a href="{{.Link}}">click here</a>.
This link expires in 1 hour.</p>
<p>If you did not request a reset, you can ignore this message.</p>`))

func (s *MailService) SendConfirmationEmail(email, name, token string) {
	body, err := renderMail(confirmTmpl, name, fmt.Sprintf("%s/confirm?token=%s", s.SiteURL, token))
	if err != nil {
		log.Printf("Error rendering confirmation email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "PinHub - Confirm your email", body)
}

func (s *MailService) SendPasswordResetEmail(email, name, token string) {
	body, err := renderMail(resetTmpl, name, fmt.Sprintf("%s/reset-password?token=%s", s.SiteURL, token))
	if err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "PinHub - Reset your password", body)
}

func renderMail(t *template.Template, name, link string) (string, error) {
	var sb strings.Builder
	err := t.Execute(&sb, map[string]string{"Name": name, "Link": link})
	return sb.String(), err
}
