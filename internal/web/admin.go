package web

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neural-glass/internal/assistant"
	"github.com/Zachkp/neural-glass/internal/store"
)

const adminCookie = "admin_token"

// Paths that are never recorded as visits.
var untrackedPrefixes = []string{
	"/static/", "/images/", "/assets/", "/admin", "/favicon", "/privacy", "/status", "/chat",
}

func (s *Server) initAdminToken() {
	s.adminToken = generateToken()
	s.hashingSalt = generateToken()

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", s.adminToken)
	}
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(b)
}

// hashIP returns a salted, truncated hash of ip. The salt lives only in
// memory, so hashes are stable per process and unlinkable across restarts.
func (s *Server) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// adminCredentials returns the configured login. Development builds fall
// back to a default pair; release builds refuse logins until configured.
func (s *Server) adminCredentials() (string, string, bool) {
	user, pass := s.cfg.AdminUsername, s.cfg.AdminPassword
	if user != "" && pass != "" {
		return user, pass, true
	}
	if gin.Mode() == gin.ReleaseMode {
		return "", "", false
	}
	if user == "" {
		user = "admin"
		log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if pass == "" {
		pass = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return user, pass, true
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTrackingMiddleware records page views with hashed IPs. Static
// files, admin pages, widget polling and Do-Not-Track requests are skipped.
func (s *Server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.store == nil || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || untracked(path) {
			c.Next()
			return
		}

		v := store.Visitor{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Country:   c.GetHeader(s.cfg.CountryHeader),
		}
		s.background(func() {
			if err := s.store.RecordVisit(context.Background(), v); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}

func untracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (s *Server) cleanupOldRecords() {
	if s.store == nil {
		return
	}
	if _, err := s.store.Cleanup(context.Background(), store.DefaultRetention); err != nil {
		log.Printf("Error cleaning up old records: %v", err)
	}
}

// StartCleanup prunes old records now and then daily until ctx is done.
func (s *Server) StartCleanup(ctx context.Context) {
	s.background(func() {
		s.cleanupOldRecords()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupOldRecords()
			}
		}
	})
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		wantUser, wantPass, ok := s.adminCredentials()
		if ok &&
			subtle.ConstantTimeCompare([]byte(username), []byte(wantUser)) == 1 &&
			subtle.ConstantTimeCompare([]byte(password), []byte(wantPass)) == 1 {
			c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", s.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		log.Printf("Failed admin login attempt from %s", s.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		status := "unknown"
		if s.status != nil {
			st, _ := s.status.Status()
			status = st.String()
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":     stats,
			"assistant": status,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/chats", func(c *gin.Context) {
		chats, err := s.recentChats(c, 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load chats",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-chats.html", gin.H{
			"chats": chats,
		})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.recentVisitors(c, 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	// Conversations recorded by the assistant backend itself
	admin.GET("/api/remote-logs", func(c *gin.Context) {
		logs, err := s.assistant.ChatLogs(c.Request.Context(), c.GetHeader("x-admin-token"))
		switch {
		case errors.Is(err, assistant.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case err != nil:
			log.Printf("Error fetching assistant logs: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
		default:
			if logs == nil {
				logs = []assistant.ChatLog{}
			}
			c.JSON(http.StatusOK, logs)
		}
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		s.background(s.cleanupOldRecords)
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

var errNoStore = errors.New("visitor store not configured")

func (s *Server) stats(c *gin.Context) (*store.Stats, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.Stats(c.Request.Context())
}

func (s *Server) recentChats(c *gin.Context, limit int) ([]store.Chat, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.RecentChats(c.Request.Context(), limit)
}

func (s *Server) recentVisitors(c *gin.Context, limit int) ([]store.Visitor, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.RecentVisitors(c.Request.Context(), limit)
}
