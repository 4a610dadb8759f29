package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/talleraustral/taller/internal/report/domain"
)

func (s *Server) MonthlySalesSummary(c *gin.Context) {
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil {
		AbortWithError(c, newValidationError("month", "invalid_month", "invalid month"))
		return
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	resp, err := s.reportSvc.MonthlySalesSummary(c.Request.Context(), month, year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) NewClientCount(c *gin.Context) {
	resp, err := s.reportSvc.NewClientCount(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ClientActivitySummary(c *gin.Context) {
	resp, err := s.reportSvc.ClientActivitySummary(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) StockStatus(c *gin.Context) {
	var query struct {
		Category string `form:"category"`
		LowOnly  bool   `form:"low_only"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reportSvc.StockStatus(c.Request.Context(), reportdomain.StockStatusRequest{
		Category: strings.TrimSpace(query.Category),
		LowOnly:  query.LowOnly,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) OrdersByEquipment(c *gin.Context) {
	groupBy := strings.TrimSpace(c.Query("group_by"))
	if groupBy == "" {
		groupBy = reportdomain.GroupByEquipmentType
	}

	resp, err := s.reportSvc.OrdersByEquipment(c.Request.Context(), reportdomain.OrdersByEquipmentRequest{
		RangeRequest: rangeRequest(c),
		GroupBy:      groupBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TechnicianPerformance(c *gin.Context) {
	resp, err := s.reportSvc.TechnicianPerformance(c.Request.Context(), rangeRequest(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AverageRepairTime(c *gin.Context) {
	groupByEquipment := strings.EqualFold(strings.TrimSpace(c.Query("group_by_equipment")), "true")

	resp, err := s.reportSvc.AverageRepairTime(c.Request.Context(), reportdomain.AverageRepairTimeRequest{
		RangeRequest:     rangeRequest(c),
		GroupByEquipment: groupByEquipment,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SalesByClient(c *gin.Context) {
	resp, err := s.reportSvc.SalesByClient(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) InvoiceAging(c *gin.Context) {
	resp, err := s.reportSvc.InvoiceAging(c.Request.Context(), c.Query("as_of_date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RevenueByServiceType(c *gin.Context) {
	resp, err := s.reportSvc.RevenueByServiceType(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) OrderStatusCounts(c *gin.Context) {
	resp, err := s.reportSvc.OrderStatusCounts(c.Request.Context(), rangeRequest(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TicketVolumeAndResolution(c *gin.Context) {
	resp, err := s.reportSvc.TicketVolumeAndResolution(c.Request.Context(), reportdomain.TicketReportRequest{
		RangeRequest: rangeRequest(c),
		Status:       strings.TrimSpace(strings.ToLower(c.Query("status"))),
		Priority:     strings.TrimSpace(strings.ToLower(c.Query("priority"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func rangeRequest(c *gin.Context) reportdomain.RangeRequest {
	return reportdomain.RangeRequest{
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
	}
}
