package handlers

import (
	"net/http"

	"github.com/swiftstatic/swiftstatic/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports liveness only; a missing mail provider does not fail it.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(common.MsgHealthy))
}
