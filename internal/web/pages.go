package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neural-glass/internal/content"
	"github.com/Zachkp/neural-glass/internal/health"
)

func (s *Server) setupPageRoutes(r *gin.Engine) {
	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"about":       content.AboutMe,
			"features":    content.Features,
			"projects":    content.Projects,
			"pollSeconds": s.pollSeconds(),
		})
	})

	// Journey timeline fragments
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{
			"entries": content.Work,
		})
	})

	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"entries": content.Education,
		})
	})
}

func (s *Server) pollSeconds() int {
	secs := int(s.cfg.HealthInterval.Seconds())
	if secs <= 0 {
		secs = int(health.DefaultInterval.Seconds())
	}
	return secs
}
