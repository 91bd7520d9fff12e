package web

import (
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neural-glass/internal/config"
)

// Mailer delivers contact form submissions.
type Mailer interface {
	Send(name, email, message string) error
}

// SMTPMailer sends contact messages through an SMTP relay.
type SMTPMailer struct {
	cfg config.SMTP
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(name, email, message string) error {
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	to := m.cfg.To
	if to == "" {
		to = m.cfg.User
	}

	msg := composeContactEmail(to, m.cfg.User, name, email, message)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, msg); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	return nil
}

// headerSafe drops line breaks so a value cannot start a new header.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}

func composeContactEmail(to, from, name, email, message string) []byte {
	name = headerSafe(name)
	email = headerSafe(email)
	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

func (s *Server) setupContactRoutes(r *gin.Engine) {
	// HTMX contact form fragment
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.POST("/contact", func(c *gin.Context) {
		name := c.PostForm("fullName")
		email := c.PostForm("email")
		message := c.PostForm("message")

		if name == "" || email == "" || message == "" {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Please fill in your name, email and message.",
			})
			return
		}

		if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(name+email, "\r\n") {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Please enter a valid name and email address.",
			})
			return
		}

		if err := s.mailer.Send(name, email, message); err != nil {
			log.Printf("Error sending email: %v", err)
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Sorry, there was an error sending your message. Please try again later.",
			})
			return
		}

		log.Printf("Contact email sent from %s", s.hashIP(c.ClientIP()))
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	})
}
