package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) MarkCommissionPaid(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.commissionSvc.MarkPaid(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
