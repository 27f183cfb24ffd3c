package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

// GetWarranty handles GET /api/v1/warranties/:id
func GetWarranty(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	record, err := services.GetWarrantyService().GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// ListWarranties handles GET /api/v1/warranties with optional filters:
// ?order_code=, ?customer_code=, ?expiring_within_days=
func ListWarranties(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	svc := services.GetWarrantyService()

	if orderCode := c.Query("order_code"); orderCode != "" {
		records, err := svc.GetByOrderCode(orderCode)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "count": len(records)})
		return
	}

	if customerCode := c.Query("customer_code"); customerCode != "" {
		records, err := svc.GetByCustomerCode(customerCode)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "count": len(records)})
		return
	}

	days := 30
	if raw := c.Query("expiring_within_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": "expiring_within_days must be a positive integer",
				},
			})
			return
		}
		days = parsed
	}

	records, err := svc.GetExpiringSoon(days)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "count": len(records)})
}
