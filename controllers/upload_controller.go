package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/config"
	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
	"github.com/xoxo-studio/xoxo-workshop-api/utils"
)

// UploadProductImage handles POST /api/v1/products/:id/images - uploads a
// product photo to S3 and records it. The "phase" form field says whether
// the photo was taken before work started or after it finished.
func UploadProductImage(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleWorker, models.RoleSales, models.RoleAdmin) {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Product ID must be numeric",
			},
		})
		return
	}

	phase := models.ImagePhase(c.PostForm("phase"))
	if phase == "" {
		phase = models.ImageBefore
	}
	if phase != models.ImageBefore && phase != models.ImageAfter {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PHASE",
				"message": "phase must be 'before' or 'after'",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "Image file is required (form field 'image')",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE",
				"message": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, uint(productID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	imageKey, err := services.GetImageService().UploadImage(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload image",
			},
		})
		return
	}

	image := models.ProductImage{
		ProductID: product.ID,
		Phase:     phase,
		S3Key:     imageKey,
	}
	if err := db.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to record image",
			},
		})
		return
	}

	if url, err := services.GetImageService().GetImageURL(image.S3Key); err == nil {
		image.URL = url
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    image,
	})
}

// DeleteProductImage handles DELETE /api/v1/products/:id/images/:imageId
func DeleteProductImage(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Product ID must be numeric",
			},
		})
		return
	}
	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Image ID must be numeric",
			},
		})
		return
	}

	db := config.GetDB()
	var image models.ProductImage
	if err := db.Where("id = ? AND product_id = ?", uint(imageID), uint(productID)).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Image not found",
			},
		})
		return
	}

	// Remove the S3 object first; the row stays if that fails so the key
	// is not orphaned.
	if err := services.GetImageService().DeleteImage(image.S3Key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_FAILED",
				"message": "Failed to delete image from storage",
			},
		})
		return
	}

	if err := db.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete image record",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image deleted",
	})
}
