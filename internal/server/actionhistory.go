package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talleraustral/taller/internal/actionhistory"
	"github.com/talleraustral/taller/pkg/db/pagination"
)

// recordAction writes an audit entry for a completed mutation. History
// writes never fail the request.
func (s *Server) recordAction(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	if s.historySvc == nil {
		return
	}
	actor := strings.TrimSpace(c.GetHeader("X-Actor"))
	s.historySvc.Record(c.Request.Context(), actor, action, targetType, targetID, metadata)
}

type listActionHistoryQuery struct {
	PageToken  string `form:"page_token"`
	PageSize   int    `form:"page_size"`
	Action     string `form:"action"`
	TargetType string `form:"target_type"`
}

func (s *Server) ListActionHistory(c *gin.Context) {
	var query listActionHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.historySvc.List(c.Request.Context(), actionhistory.ListRequest{
		Pagination: pagination.Pagination{
			PageToken: strings.TrimSpace(query.PageToken),
			PageSize:  query.PageSize,
		},
		Action:     strings.TrimSpace(query.Action),
		TargetType: strings.TrimSpace(query.TargetType),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Entries, "page_info": resp.PageInfo})
}
