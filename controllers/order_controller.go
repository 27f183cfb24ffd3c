package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

// CreateOrder handles POST /api/v1/orders - order intake (sales and admin only)
func CreateOrder(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := services.GetOrderService().Create(req, member)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/orders/:code - fetches one order with
// computed totals, progress, and presigned photo URLs
func GetOrder(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	order, err := services.GetOrderService().GetByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Presign photo URLs. A failure here degrades to a missing URL
	// rather than failing the whole read.
	imageService := services.GetImageService()
	if imageService != nil {
		for i := range order.Products {
			for j := range order.Products[i].Images {
				img := &order.Products[i].Images[j]
				url, err := imageService.GetImageURL(img.S3Key)
				if err != nil {
					log.Printf("Failed to presign image %s: %v", img.S3Key, err)
					continue
				}
				img.URL = url
			}
		}
	}

	progress := make(map[uint]float64, len(order.Products))
	for i := range order.Products {
		progress[order.Products[i].ID] = order.Products[i].Progress()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
		"summary": gin.H{
			"subtotal":        order.Subtotal(),
			"discount_amount": order.DiscountValue(),
			"total":           order.Total(),
			"deposit_value":   order.DepositValue(),
			"progress":        progress,
		},
	})
}

// ListOrders handles GET /api/v1/orders - lists orders, optionally by status
func ListOrders(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	orders, err := services.GetOrderService().List(models.OrderStatus(c.Query("status")))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles POST /api/v1/orders/:code/status - requests a
// status transition (sales and admin only). Side-effect failures come
// back as warnings next to the updated order.
func UpdateOrderStatus(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	var req services.TransitionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := services.GetOrderService().ChangeStatus(c.Param("code"), req, member)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     result.Order,
		"warnings": result.Warnings,
	})
}

// ListOrderReceipts handles GET /api/v1/orders/:code/receipts
func ListOrderReceipts(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	receipts, err := services.GetFinanceService().GetByOrderCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    receipts,
	})
}

// ListOrderMessages handles GET /api/v1/orders/:code/messages
func ListOrderMessages(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	logs, err := services.GetMessageService().GetByOrderCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    logs,
	})
}
