package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	resourcedomain "github.com/smallbiznis/lodgera/internal/resource/domain"
)

type createResourceRequest struct {
	Name          string         `json:"name"`
	NightlyAmount int64          `json:"nightly_amount"`
	Currency      string         `json:"currency"`
	MaxGuests     int            `json:"max_guests"`
	Metadata      map[string]any `json:"metadata"`
}

func (s *Server) CreateResource(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.resourceSvc.Create(c.Request.Context(), resourcedomain.CreateResourceRequest{
		Name:          strings.TrimSpace(req.Name),
		NightlyAmount: req.NightlyAmount,
		Currency:      strings.TrimSpace(req.Currency),
		MaxGuests:     req.MaxGuests,
		Metadata:      req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListResources(c *gin.Context) {
	var query struct {
		ActiveOnly bool `form:"active_only,default=true"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.resourceSvc.List(c.Request.Context(), query.ActiveOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetResourceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.resourceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateResource(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.resourceSvc.Deactivate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id, "active": false}})
}
