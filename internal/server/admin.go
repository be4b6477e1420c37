package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminCookie = "admin_token"

// adminAuth lets requests through only when they carry a valid session
// handed out at login.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		user, err := s.sessions.verify(token)
		if err != nil {
			s.log.Debug("rejected admin session", zap.Error(err))
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set("adminUser", user)
		c.Next()
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// clientID is how admin actions are attributed in logs without storing the
// raw address.
func (s *Server) clientID(c *gin.Context) string {
	if s.visitors == nil {
		return "unknown"
	}
	return s.visitors.HashIP(c.ClientIP())
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	if s.cfg.Admin.Username == "admin" && s.cfg.Admin.Password == "admin123" {
		s.log.Warn("using default admin credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if equal(username, s.cfg.Admin.Username) && equal(password, s.cfg.Admin.Password) {
			token, err := s.sessions.issue(username)
			if err != nil {
				s.log.Error("error issuing admin session", zap.Error(err))
				c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
					"error": "Failed to start session",
				})
				return
			}
			c.SetCookie(adminCookie, token, int(sessionTTL.Seconds()), "/admin", "", false, true)
			s.log.Info("admin login successful", zap.String("client", s.clientID(c)))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		s.log.Warn("failed admin login attempt", zap.String("client", s.clientID(c)))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.log.Info("admin logout", zap.String("client", s.clientID(c)))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	s.setupContentAPI(admin.Group("/api"))

	if s.visitors == nil {
		return
	}

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.visitors.Stats(c.Request.Context())
		if err != nil {
			s.log.Error("error loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":   stats,
			"views":   s.views.Len(),
			"loading": s.store.Loading(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.visitors.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		list, err := s.visitors.Recent(c.Request.Context(), 200)
		if err != nil {
			s.log.Error("error loading visitors", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": list,
		})
	})

	// Privacy compliance: by default drop what is past retention, with
	// ?scope=all drop everything.
	admin.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		ctx := c.Request.Context()
		var (
			removed int64
			err     error
		)
		if c.Query("scope") == "all" {
			removed, err = s.visitors.DeleteAll(ctx)
		} else {
			removed, err = s.visitors.Cleanup(ctx)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		s.log.Info("visitor data deleted by admin",
			zap.String("client", s.clientID(c)),
			zap.Int64("rows", removed),
		)
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": removed})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.visitors.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Info("admin stats exported", zap.String("client", s.clientID(c)))
		c.JSON(http.StatusOK, stats)
	})
}
