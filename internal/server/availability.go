package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	availabilitydomain "github.com/smallbiznis/lodgera/internal/availability/domain"
)

func (s *Server) CheckAvailability(c *gin.Context) {
	var query struct {
		ResourceIDs          string `form:"resource_ids"`
		CheckIn              string `form:"check_in"`
		CheckOut             string `form:"check_out"`
		ExcludeReservationID string `form:"exclude_reservation_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.availabilitySvc.Check(c.Request.Context(), availabilitydomain.CheckRequest{
		ResourceIDs:          splitCommaList(query.ResourceIDs),
		CheckIn:              strings.TrimSpace(query.CheckIn),
		CheckOut:             strings.TrimSpace(query.CheckOut),
		ExcludeReservationID: strings.TrimSpace(query.ExcludeReservationID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
