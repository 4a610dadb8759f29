package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	providerdomain "github.com/talleraustral/taller/internal/provider/domain"
)

type createProviderRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	CUIT         string `json:"cuit"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
}

type updateProviderRequest struct {
	Type         *string `json:"type"`
	Name         *string `json:"name"`
	BusinessName *string `json:"business_name"`
	ContactName  *string `json:"contact_name"`
	CUIT         *string `json:"cuit"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Notes        *string `json:"notes"`
}

func (s *Server) CreateProvider(c *gin.Context) {
	var req createProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.providerSvc.Create(c.Request.Context(), providerdomain.CreateProviderRequest{
		Type:         strings.TrimSpace(strings.ToLower(req.Type)),
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		ContactName:  strings.TrimSpace(req.ContactName),
		CUIT:         strings.TrimSpace(req.CUIT),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Notes:        req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "provider.create", "provider", resp.ID.String(), map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProviders(c *gin.Context) {
	var query struct {
		Type string `form:"type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.providerSvc.List(c.Request.Context(), providerdomain.ListProviderRequest{
		Type: strings.TrimSpace(strings.ToLower(query.Type)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SearchProviders(c *gin.Context) {
	resp, err := s.providerSvc.Search(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProviderByID(c *gin.Context) {
	resp, err := s.providerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProvider(c *gin.Context) {
	var req updateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.providerSvc.Update(c.Request.Context(), providerdomain.UpdateProviderRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Type:         req.Type,
		Name:         req.Name,
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		CUIT:         req.CUIT,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Notes:        req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "provider.update", "provider", resp.ID.String(), nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProvider(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.providerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "provider.delete", "provider", id, nil)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isProviderValidationError(err error) bool {
	switch err {
	case providerdomain.ErrInvalidType,
		providerdomain.ErrInvalidName,
		providerdomain.ErrInvalidID,
		providerdomain.ErrMissingBusinessName,
		providerdomain.ErrMissingContactName:
		return true
	default:
		return false
	}
}
