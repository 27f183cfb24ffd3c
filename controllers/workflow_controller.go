package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

func stepIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Step ID must be numeric",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// SetStepDoneRequest represents the request body for marking a step done
type SetStepDoneRequest struct {
	IsDone *bool `json:"is_done" binding:"required"`
}

// SetStepDone handles PATCH /api/v1/workflow-steps/:id/done - marks a
// workflow step done or not done
func SetStepDone(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleWorker, models.RoleSales, models.RoleAdmin) {
		return
	}

	id, ok := stepIDParam(c)
	if !ok {
		return
	}

	var req SetStepDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	step, err := services.GetWorkflowService().SetDone(id, *req.IsDone)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    step,
	})
}

// ApproveStep handles POST /api/v1/workflow-steps/:id/approve - records
// an approval on a finished step (admin only)
func ApproveStep(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleAdmin) {
		return
	}

	id, ok := stepIDParam(c)
	if !ok {
		return
	}

	step, err := services.GetWorkflowService().Approve(id, member)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    step,
	})
}

// AssignMembersRequest represents the request body for step assignment
type AssignMembersRequest struct {
	Members []string `json:"members" binding:"required"`
}

// AssignStepMembers handles PUT /api/v1/workflow-steps/:id/members -
// replaces the members assigned to a step
func AssignStepMembers(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	id, ok := stepIDParam(c)
	if !ok {
		return
	}

	var req AssignMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	step, err := services.GetWorkflowService().AssignMembers(id, req.Members)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    step,
	})
}
