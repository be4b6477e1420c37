package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/portfolio"
)

// The content API edits the live store. Updates to ids that do not exist
// are no-ops in the store; here they become 404s.
func (s *Server) setupContentAPI(api *gin.RouterGroup) {
	api.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.Content())
	})

	api.PATCH("/personal-info", func(c *gin.Context) {
		var patch portfolio.PersonalInfoPatch
		if !bindValid(c, &patch) {
			return
		}
		// The patch alone can't tell that it empties a required field.
		if err := portfolio.ValidateStruct(s.store.Content().PersonalInfo.Merge(patch)); err != nil {
			badRequest(c, err)
			return
		}
		s.store.UpdatePersonalInfo(patch)
		c.JSON(http.StatusOK, s.store.Content().PersonalInfo)
	})

	api.PUT("/summary", func(c *gin.Context) {
		var body struct {
			ProfessionalSummary string `json:"professionalSummary" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		s.store.UpdateProfessionalSummary(body.ProfessionalSummary)
		c.JSON(http.StatusOK, gin.H{"professionalSummary": body.ProfessionalSummary})
	})

	api.PATCH("/skills", func(c *gin.Context) {
		var skills portfolio.Skills
		if err := c.ShouldBindJSON(&skills); err != nil {
			badRequest(c, err)
			return
		}
		s.store.UpdateSkills(skills)
		c.JSON(http.StatusOK, s.store.Content().Skills)
	})

	api.POST("/projects", func(c *gin.Context) {
		var p portfolio.Project
		if err := c.ShouldBindJSON(&p); err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.AddProject(p); err != nil {
			addFailed(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	})

	api.PATCH("/projects/:id", func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var patch portfolio.ProjectPatch
		if !bindValid(c, &patch) {
			return
		}
		if !s.store.UpdateProject(id, patch) {
			notFound(c)
			return
		}
		p, _ := s.store.Content().FindProject(id)
		c.JSON(http.StatusOK, p)
	})

	api.POST("/experience", func(c *gin.Context) {
		var e portfolio.Experience
		if err := c.ShouldBindJSON(&e); err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.AddExperience(e); err != nil {
			addFailed(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	})

	api.PATCH("/experience/:id", func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var patch portfolio.ExperiencePatch
		if !bindValid(c, &patch) {
			return
		}
		if !s.store.UpdateExperience(id, patch) {
			notFound(c)
			return
		}
		e, _ := s.store.Content().FindExperience(id)
		c.JSON(http.StatusOK, e)
	})

	api.POST("/achievements", func(c *gin.Context) {
		var a portfolio.Achievement
		if err := c.ShouldBindJSON(&a); err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.AddAchievement(a); err != nil {
			addFailed(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	})

	api.PUT("/education", func(c *gin.Context) {
		var list []portfolio.Education
		if err := c.ShouldBindJSON(&list); err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.UpdateEducation(list); err != nil {
			addFailed(c, err)
			return
		}
		c.JSON(http.StatusOK, s.store.Content().Education)
	})
}

// bindValid decodes a JSON patch and checks its validate tags.
func bindValid(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, err)
		return false
	}
	if err := portfolio.ValidateStruct(dst); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func addFailed(c *gin.Context, err error) {
	if errors.Is(err, portfolio.ErrDuplicateID) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	badRequest(c, err)
}
