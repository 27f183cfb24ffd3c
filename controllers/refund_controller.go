package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

// RequestRefundRequest represents the request body for opening a refund
type RequestRefundRequest struct {
	Reason string  `json:"reason" binding:"required"`
	Amount float64 `json:"amount"`
}

// RequestRefund handles POST /api/v1/orders/:code/refund - opens a refund
// request and moves the order into the refund state
func RequestRefund(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	var req RequestRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	refund, err := services.GetRefundService().Request(c.Param("code"), req.Reason, req.Amount, member)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    refund,
	})
}

// ReviewRefundRequest represents the request body for a refund decision
type ReviewRefundRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
	Notes    string `json:"notes"`
}

// ReviewRefund handles POST /api/v1/refunds/:id/review (admin only)
func ReviewRefund(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleAdmin) {
		return
	}

	var req ReviewRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	refund, err := services.GetRefundService().Review(c.Param("id"), req.Decision == "approve", req.Notes, member)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    refund,
	})
}

// ListRefunds handles GET /api/v1/refunds with optional ?order_code= filter;
// without a filter it returns pending requests awaiting review
func ListRefunds(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	svc := services.GetRefundService()

	if orderCode := c.Query("order_code"); orderCode != "" {
		refunds, err := svc.GetByOrderCode(orderCode)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": refunds, "count": len(refunds)})
		return
	}

	refunds, err := svc.ListPending()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": refunds, "count": len(refunds)})
}
