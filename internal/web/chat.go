package web

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/Zachkp/neural-glass/internal/content"
	"github.com/Zachkp/neural-glass/internal/health"
	"github.com/Zachkp/neural-glass/internal/navigator"
	"github.com/Zachkp/neural-glass/internal/scroll"
	"github.com/Zachkp/neural-glass/internal/store"
)

// maxQueryLen bounds what a visitor can forward to the assistant.
const maxQueryLen = 2000

func (s *Server) setupChatRoutes(r *gin.Engine) {
	r.GET("/chat/welcome", func(c *gin.Context) {
		c.HTML(http.StatusOK, "chat-welcome.html", gin.H{
			"welcome":   content.WelcomeMessage,
			"quickAsks": content.QuickAsks,
		})
	})

	r.POST("/chat", s.handleChat)

	// Status dot polled by the widget
	r.GET("/status", func(c *gin.Context) {
		status := health.Unknown
		if s.status != nil {
			status, _ = s.status.Status()
		}
		// anything but a confirmed healthy probe shows as offline
		dot := "offline"
		if status == health.Online {
			dot = "online"
		}
		c.HTML(http.StatusOK, "status-dot.html", gin.H{
			"status":      dot,
			"pollSeconds": s.pollSeconds(),
		})
	})
}

func (s *Server) handleChat(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("query"))
	if query == "" {
		c.Status(http.StatusNoContent)
		return
	}
	query = truncate(query, maxQueryLen)

	if trigger := scrollTrigger(query); trigger != "" {
		c.Header("HX-Trigger", trigger)
	}

	data := gin.H{"query": query}
	reply, err := s.assistant.Chat(c.Request.Context(), query)
	if err != nil {
		log.Printf("Error reaching assistant: %v", err)
		data["offline"] = content.OfflineMessage
	} else {
		data["answer"] = renderMarkdown(reply.Text)
		data["resume"] = reply.Resume
		data["resumePath"] = content.ResumePath
	}

	s.recordChat(c, query, err == nil)
	c.HTML(http.StatusOK, "chat-exchange.html", data)
}

// truncate cuts s to at most n bytes without splitting a character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// scrollTrigger builds the HX-Trigger payload that makes the page scroll
// to the sections a message mentions.
func scrollTrigger(query string) string {
	targets := navigator.Targets(query)
	if len(targets) == 0 {
		return ""
	}
	cmds := make([]scroll.Command, 0, len(targets))
	for _, t := range targets {
		cmds = append(cmds, scroll.NewCommand(t, navigator.Delay))
	}
	payload, err := json.Marshal(map[string][]scroll.Command{"smoothScroll": cmds})
	if err != nil {
		return ""
	}
	return string(payload)
}

func (s *Server) recordChat(c *gin.Context, query string, answered bool) {
	if s.store == nil || c.GetHeader("DNT") == "1" {
		return
	}
	chat := store.Chat{
		HashedIP: s.hashIP(c.ClientIP()),
		Country:  c.GetHeader(s.cfg.CountryHeader),
		Query:    query,
		Answered: answered,
	}
	s.background(func() {
		if err := s.store.RecordChat(context.Background(), chat); err != nil {
			log.Printf("Error recording chat: %v", err)
		}
	})
}

// renderMarkdown converts an assistant answer to HTML. Raw HTML in the
// answer is not passed through.
func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
