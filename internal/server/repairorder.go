package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	repairorderdomain "github.com/talleraustral/taller/internal/repairorder/domain"
)

type createRepairOrderRequest struct {
	ClientID             string   `json:"client_id"`
	EquipmentType        string   `json:"equipment_type"`
	EquipmentBrand       string   `json:"equipment_brand"`
	EquipmentModel       string   `json:"equipment_model"`
	ReportedIssue        string   `json:"reported_issue"`
	Status               string   `json:"status"`
	AssignedTechnician   string   `json:"assigned_technician"`
	AssignedTechnicianID string   `json:"assigned_technician_id"`
	PartsCost            float64  `json:"parts_cost"`
	LaborCost            float64  `json:"labor_cost"`
	TotalCost            float64  `json:"total_cost"`
	EntryDate            string   `json:"entry_date"`
}

type updateRepairOrderRequest struct {
	EquipmentType        *string  `json:"equipment_type"`
	EquipmentBrand       *string  `json:"equipment_brand"`
	EquipmentModel       *string  `json:"equipment_model"`
	ReportedIssue        *string  `json:"reported_issue"`
	Status               *string  `json:"status"`
	AssignedTechnician   *string  `json:"assigned_technician"`
	AssignedTechnicianID *string  `json:"assigned_technician_id"`
	PartsCost            *float64 `json:"parts_cost"`
	LaborCost            *float64 `json:"labor_cost"`
	TotalCost            *float64 `json:"total_cost"`
	CompletionDate       *string  `json:"completion_date"`
}

func (s *Server) CreateRepairOrder(c *gin.Context) {
	var req createRepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entryDate, err := parseOptionalTime(req.EntryDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("entry_date", "invalid_entry_date", "invalid entry_date"))
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), repairorderdomain.CreateRepairOrderRequest{
		ClientID:             strings.TrimSpace(req.ClientID),
		EquipmentType:        strings.TrimSpace(req.EquipmentType),
		EquipmentBrand:       strings.TrimSpace(req.EquipmentBrand),
		EquipmentModel:       strings.TrimSpace(req.EquipmentModel),
		ReportedIssue:        req.ReportedIssue,
		Status:               strings.TrimSpace(req.Status),
		AssignedTechnician:   strings.TrimSpace(req.AssignedTechnician),
		AssignedTechnicianID: strings.TrimSpace(req.AssignedTechnicianID),
		PartsCost:            req.PartsCost,
		LaborCost:            req.LaborCost,
		TotalCost:            req.TotalCost,
		EntryDate:            entryDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "repair_order.create", "repair_order", resp.ID.String(), map[string]any{
		"order_number": resp.OrderNumber,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRepairOrders(c *gin.Context) {
	var query struct {
		ClientID  string `form:"client_id"`
		Status    string `form:"status"`
		EntryFrom string `form:"entry_from"`
		EntryTo   string `form:"entry_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entryFrom, err := parseOptionalTime(query.EntryFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("entry_from", "invalid_entry_from", "invalid entry_from"))
		return
	}

	entryTo, err := parseOptionalTime(query.EntryTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("entry_to", "invalid_entry_to", "invalid entry_to"))
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), repairorderdomain.ListRepairOrderRequest{
		ClientID:  strings.TrimSpace(query.ClientID),
		Status:    strings.TrimSpace(query.Status),
		EntryFrom: entryFrom,
		EntryTo:   entryTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRepairOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRepairOrder(c *gin.Context) {
	var req updateRepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var completionDate *time.Time
	if req.CompletionDate != nil {
		parsed, err := parseOptionalTime(*req.CompletionDate, false)
		if err != nil {
			AbortWithError(c, newValidationError("completion_date", "invalid_completion_date", "invalid completion_date"))
			return
		}
		completionDate = parsed
	}

	resp, err := s.orderSvc.Update(c.Request.Context(), repairorderdomain.UpdateRepairOrderRequest{
		ID:                   strings.TrimSpace(c.Param("id")),
		EquipmentType:        req.EquipmentType,
		EquipmentBrand:       req.EquipmentBrand,
		EquipmentModel:       req.EquipmentModel,
		ReportedIssue:        req.ReportedIssue,
		Status:               req.Status,
		AssignedTechnician:   req.AssignedTechnician,
		AssignedTechnicianID: req.AssignedTechnicianID,
		PartsCost:            req.PartsCost,
		LaborCost:            req.LaborCost,
		TotalCost:            req.TotalCost,
		CompletionDate:       completionDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "repair_order.update", "repair_order", resp.ID.String(), map[string]any{
		"status": resp.Status,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRepairOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.orderSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "repair_order.delete", "repair_order", id, nil)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListOverdueRepairOrders(c *gin.Context) {
	threshold := 0
	if raw := strings.TrimSpace(c.Query("threshold_days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			AbortWithError(c, newValidationError("threshold_days", "invalid_threshold_days", "invalid threshold_days"))
			return
		}
		threshold = parsed
	}

	resp, err := s.orderSvc.ListOverdue(c.Request.Context(), threshold)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isRepairOrderValidationError(err error) bool {
	switch err {
	case repairorderdomain.ErrInvalidClient,
		repairorderdomain.ErrInvalidID,
		repairorderdomain.ErrInvalidDates:
		return true
	default:
		return false
	}
}
