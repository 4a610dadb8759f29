package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ticketdomain "github.com/talleraustral/taller/internal/ticket/domain"
)

type createTicketRequest struct {
	Subject  string `json:"subject"`
	Detail   string `json:"detail"`
	Priority string `json:"priority"`
	ClientID string `json:"client_id"`
}

type updateTicketRequest struct {
	Subject  *string `json:"subject"`
	Detail   *string `json:"detail"`
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

func (s *Server) CreateTicket(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ticketSvc.Create(c.Request.Context(), ticketdomain.CreateTicketRequest{
		Subject:  strings.TrimSpace(req.Subject),
		Detail:   req.Detail,
		Priority: strings.TrimSpace(strings.ToLower(req.Priority)),
		ClientID: strings.TrimSpace(req.ClientID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "ticket.create", "ticket", resp.ID.String(), map[string]any{
		"priority": resp.Priority,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTickets(c *gin.Context) {
	var query struct {
		Status   string `form:"status"`
		Priority string `form:"priority"`
		From     string `form:"from"`
		To       string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}

	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.ticketSvc.List(c.Request.Context(), ticketdomain.ListTicketRequest{
		Status:   strings.TrimSpace(strings.ToLower(query.Status)),
		Priority: strings.TrimSpace(strings.ToLower(query.Priority)),
		From:     from,
		To:       to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTicketByID(c *gin.Context) {
	resp, err := s.ticketSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTicket(c *gin.Context) {
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ticketSvc.Update(c.Request.Context(), ticketdomain.UpdateTicketRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Subject:  req.Subject,
		Detail:   req.Detail,
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "ticket.update", "ticket", resp.ID.String(), map[string]any{
		"status": resp.Status,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isTicketValidationError(err error) bool {
	switch err {
	case ticketdomain.ErrInvalidSubject,
		ticketdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
