package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

// SetDeliveryInfo handles PUT /api/v1/orders/:code/delivery - records how
// the finished order reaches the customer
func SetDeliveryInfo(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	var req services.SetDeliveryInfoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	info, warnings, err := services.GetDeliveryService().Set(c.Param("code"), req, member)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{
		"success": true,
		"data":    info,
	}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

// GetDeliveryInfo handles GET /api/v1/orders/:code/delivery
func GetDeliveryInfo(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	info, err := services.GetDeliveryService().Get(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    info,
	})
}
