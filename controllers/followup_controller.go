package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

// ListFollowUps handles GET /api/v1/followups with optional filters:
// ?order_code=, ?status=pending|overdue
func ListFollowUps(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	svc := services.GetFollowUpService()

	if orderCode := c.Query("order_code"); orderCode != "" {
		items, err := svc.GetByOrderCode(orderCode)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
		return
	}

	switch c.Query("status") {
	case "overdue":
		items, err := svc.GetOverdue()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
	case "pending", "":
		items, err := svc.GetPending()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "count": len(items)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "status must be 'pending' or 'overdue'",
			},
		})
	}
}

// CompleteFollowUpRequest represents the request body for completing a follow-up
type CompleteFollowUpRequest struct {
	Notes string `json:"notes"`
}

// CompleteFollowUp handles POST /api/v1/followups/:id/complete
func CompleteFollowUp(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	var req CompleteFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondBindError(c, err)
		return
	}

	if err := services.GetFollowUpService().Complete(c.Param("id"), member, req.Notes); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Follow-up marked as completed",
	})
}

// CancelFollowUp handles POST /api/v1/followups/:id/cancel
func CancelFollowUp(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	if err := services.GetFollowUpService().Cancel(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Follow-up cancelled",
	})
}

// SweepOverdueFollowUps handles POST /api/v1/followups/sweep-overdue -
// flags every pending follow-up whose scheduled date has passed. Safe to
// call repeatedly; already-overdue rows are untouched.
func SweepOverdueFollowUps(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleAdmin) {
		return
	}

	updated, err := services.GetFollowUpService().MarkOverdue()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"updated": updated},
	})
}
