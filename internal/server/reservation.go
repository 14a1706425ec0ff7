package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	"github.com/smallbiznis/lodgera/pkg/db/pagination"
)

type createReservationRequest struct {
	GuestName   string   `json:"guest_name"`
	GuestEmail  string   `json:"guest_email"`
	ResourceIDs []string `json:"resource_ids"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	Guests      int      `json:"guests"`
	AgentID     string   `json:"agent_id"`
}

func (s *Server) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reservationSvc.Create(c.Request.Context(), reservationdomain.CreateReservationRequest{
		GuestName:   strings.TrimSpace(req.GuestName),
		GuestEmail:  strings.TrimSpace(req.GuestEmail),
		ResourceIDs: req.ResourceIDs,
		CheckIn:     strings.TrimSpace(req.CheckIn),
		CheckOut:    strings.TrimSpace(req.CheckOut),
		Guests:      req.Guests,
		AgentID:     strings.TrimSpace(req.AgentID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetReservationByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.reservationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReservations(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reservationSvc.List(c.Request.Context(), reservationdomain.ListReservationsRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateReservationStatusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
}

func (s *Server) UpdateReservationStatus(c *gin.Context) {
	var req updateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		actor = strings.TrimSpace(c.GetHeader("X-Actor"))
	}

	resp, err := s.reservationSvc.UpdateStatus(c.Request.Context(), reservationdomain.UpdateStatusRequest{
		ReservationID: strings.TrimSpace(c.Param("id")),
		Status:        strings.TrimSpace(req.Status),
		Actor:         actor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
