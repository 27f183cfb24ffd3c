package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/config"
	"github.com/xoxo-studio/xoxo-workshop-api/middleware"
	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

// currentMember resolves the acting staff member from the validated JWT.
// On failure it writes the error response and returns false.
func currentMember(c *gin.Context) (*models.Member, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var member models.Member
	if err := db.Where("auth0_id = ?", auth0ID).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MEMBER_NOT_FOUND",
				"message": "Staff profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &member, true
}

// requireRole checks the member's role against the allowed set. On
// failure it writes the 403 response and returns false.
func requireRole(c *gin.Context, member *models.Member, roles ...string) bool {
	for _, r := range roles {
		if member.Role == r {
			return true
		}
	}
	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "You do not have permission to perform this action",
		},
	})
	return false
}

// respondServiceError maps a service-layer error to the HTTP envelope.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    vErr.Code,
				"message": vErr.Message,
			},
		})
		return
	}

	var cErr *services.ConflictError
	if errors.As(err, &cErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    cErr.Code,
				"message": cErr.Message,
			},
		})
		return
	}

	if services.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Record not found",
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "An internal error occurred",
		},
	})
}

// respondBindError reports a request body that failed binding.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}
