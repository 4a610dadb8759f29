package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type setSettingRequest struct {
	Value string `json:"value"`
}

func (s *Server) GetSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	value, err := s.sysconfigSvc.Get(c.Request.Context(), key)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"key": key, "value": value}})
}

func (s *Server) SetSetting(c *gin.Context) {
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	key := strings.TrimSpace(c.Param("key"))
	if err := s.sysconfigSvc.Set(c.Request.Context(), key, req.Value); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAction(c, "settings.update", "setting", key, nil)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"key": key, "value": req.Value}})
}
