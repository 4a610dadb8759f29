package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	inventorydomain "github.com/talleraustral/taller/internal/inventory/domain"
)

type createInventoryItemRequest struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	MinimumStock *int    `json:"minimum_stock"`
	CostPrice    float64 `json:"cost_price"`
	SalePrice    float64 `json:"sale_price"`
	ProviderID   string  `json:"provider_id"`
}

type updateInventoryItemRequest struct {
	Name         *string  `json:"name"`
	SKU          *string  `json:"sku"`
	Category     *string  `json:"category"`
	MinimumStock *int     `json:"minimum_stock"`
	CostPrice    *float64 `json:"cost_price"`
	SalePrice    *float64 `json:"sale_price"`
	ProviderID   *string  `json:"provider_id"`
}

type adjustStockRequest struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"`
}

func (s *Server) CreateInventoryItem(c *gin.Context) {
	var req createInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.Create(c.Request.Context(), inventorydomain.CreateItemRequest{
		Name:         strings.TrimSpace(req.Name),
		SKU:          strings.TrimSpace(req.SKU),
		Category:     strings.TrimSpace(req.Category),
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		ProviderID:   strings.TrimSpace(req.ProviderID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "inventory.create", "inventory_item", resp.ID.String(), map[string]any{
		"sku": resp.SKU,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInventoryItems(c *gin.Context) {
	var query struct {
		Category string `form:"category"`
		LowStock bool   `form:"low_stock"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.List(c.Request.Context(), inventorydomain.ListItemRequest{
		Category: strings.TrimSpace(query.Category),
		LowStock: query.LowStock,
		Search:   strings.TrimSpace(query.Search),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInventoryItemByID(c *gin.Context) {
	resp, err := s.inventorySvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInventoryItem(c *gin.Context) {
	var req updateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.Update(c.Request.Context(), inventorydomain.UpdateItemRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Name:         req.Name,
		SKU:          req.SKU,
		Category:     req.Category,
		MinimumStock: req.MinimumStock,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		ProviderID:   req.ProviderID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "inventory.update", "inventory_item", resp.ID.String(), nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInventoryItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.inventorySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "inventory.delete", "inventory_item", id, nil)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) AdjustInventoryStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.AdjustStock(c.Request.Context(), inventorydomain.AdjustStockRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		Quantity:  req.Quantity,
		Operation: strings.TrimSpace(strings.ToLower(req.Operation)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "inventory.adjust_stock", "inventory_item", resp.ID.String(), map[string]any{
		"operation": req.Operation,
		"quantity":  req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isInventoryValidationError(err error) bool {
	switch err {
	case inventorydomain.ErrInvalidName,
		inventorydomain.ErrInvalidID,
		inventorydomain.ErrInvalidQuantity,
		inventorydomain.ErrInvalidOperation:
		return true
	default:
		return false
	}
}
