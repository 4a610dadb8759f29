package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/talleraustral/taller/internal/payment/domain"
)

type createPaymentRequest struct {
	ClientID    string  `json:"client_id"`
	DocumentID  string  `json:"document_id"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	PaymentDate string  `json:"payment_date"`
	Notes       string  `json:"notes"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	paymentDate, err := parseOptionalTime(req.PaymentDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("payment_date", "invalid_payment_date", "invalid payment_date"))
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), paymentdomain.CreatePaymentRequest{
		ClientID:    strings.TrimSpace(req.ClientID),
		DocumentID:  strings.TrimSpace(req.DocumentID),
		Amount:      req.Amount,
		Method:      strings.TrimSpace(strings.ToLower(req.Method)),
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "payment.create", "payment", resp.ID.String(), map[string]any{
		"amount": resp.Amount,
		"method": resp.Method,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		ClientID string `form:"client_id"`
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

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		ClientID: strings.TrimSpace(query.ClientID),
		From:     from,
		To:       to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePayment(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.paymentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "payment.delete", "payment", id, nil)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidClient,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
