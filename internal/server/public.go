package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/mailer"
	"github.com/Zachkp/folio/internal/store"
)

// scrollReport is what the page posts while the visitor scrolls. Offsets
// holds the top of each mounted section, keyed by section id.
type scrollReport struct {
	ScrollY *float64           `json:"scrollY" binding:"required"`
	Offsets map[string]float64 `json:"offsets"`
}

type viewState struct {
	ActiveSection string      `json:"activeSection"`
	Theme         store.Theme `json:"theme"`
	Loading       bool        `json:"loading"`
}

func (s *Server) viewState(v *store.View) viewState {
	return viewState{
		ActiveSection: v.ActiveSection(),
		Theme:         v.Theme(),
		Loading:       s.store.Loading(),
	}
}

func (s *Server) setupPublicRoutes(r *gin.Engine) {
	// Routes that read or change what the reader sees get their own view.
	viewer := r.Group("/", s.withView())

	viewer.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", s.page(viewOf(c)))
	})

	viewer.GET("/sections/:id", func(c *gin.Context) {
		id := c.Param("id")
		if !s.registry.Has(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		c.HTML(http.StatusOK, sectionTemplate(id), s.page(viewOf(c)))
	})

	viewer.POST("/scroll", s.handleScroll)

	// Nav clicks select a section directly, without waiting for the scroll
	// report that follows.
	viewer.POST("/sections/:id/select", func(c *gin.Context) {
		id := c.Param("id")
		if !s.registry.Has(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		v := viewOf(c)
		if v.ActiveSection() != id {
			v.SetActiveSection(id)
		}
		c.HTML(http.StatusOK, "nav.html", s.page(v))
	})

	viewer.POST("/theme/toggle", func(c *gin.Context) {
		v := viewOf(c)
		v.ToggleTheme()
		c.Header("HX-Trigger", "theme-changed")
		c.HTML(http.StatusOK, "theme-toggle.html", s.page(v))
	})

	viewer.GET("/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.viewState(viewOf(c)))
	})

	viewer.GET("/events", s.handleEvents)

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.POST("/contact", s.handleContact)

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":           "Privacy Policy",
			"retentionMonths": s.cfg.RetentionMonths,
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// handleScroll answers with the nav fragment when the active section
// changed and with 204 otherwise, so the page only swaps when it must.
func (s *Server) handleScroll(c *gin.Context) {
	var report scrollReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scroll report"})
		return
	}
	if s.metrics != nil {
		s.metrics.ScrollEvaluations.Inc()
	}

	v := viewOf(c)
	if _, changed := s.tracker.ObserveIn(v, *report.ScrollY, report.Offsets); !changed {
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "nav.html", s.page(v))
}

// Handle contact form submission with HTMX. Errors come back as a 200
// fragment so HTMX swaps them in.
func (s *Server) handleContact(c *gin.Context) {
	var msg mailer.Message
	if err := c.ShouldBind(&msg); err != nil {
		s.contactFailed(c, "invalid", "Please fill in every field.")
		return
	}
	if err := msg.Validate(); err != nil {
		s.contactFailed(c, "invalid", "Please check your details: "+err.Error()+".")
		return
	}
	if s.mailer == nil {
		s.contactFailed(c, "failed", "Sorry, there was an error sending your message. Please try again later.")
		return
	}

	if err := s.mailer.Send(msg); err != nil {
		if !errors.Is(err, mailer.ErrNotConfigured) {
			_ = c.Error(err)
		}
		s.log.Warn("contact message not sent", zap.Error(err))
		s.contactFailed(c, "failed", "Sorry, there was an error sending your message. Please try again later.")
		return
	}

	s.countContact("sent")
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func (s *Server) contactFailed(c *gin.Context, outcome, message string) {
	s.countContact(outcome)
	c.HTML(http.StatusOK, "contact-error.html", gin.H{
		"error": message,
	})
}

func (s *Server) countContact(outcome string) {
	if s.metrics != nil {
		s.metrics.ContactMessages.WithLabelValues(outcome).Inc()
	}
}
