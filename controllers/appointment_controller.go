package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

// CreateAppointmentRequest represents the request body for appointment creation
type CreateAppointmentRequest struct {
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerPhone string    `json:"customer_phone" binding:"required"`
	CustomerCode  *string   `json:"customer_code"`
	OrderCode     *string   `json:"order_code"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	Duration      int       `json:"duration"`
	Purpose       string    `json:"purpose" binding:"required"`
	StaffID       *uint     `json:"staff_id"`
	StaffName     *string   `json:"staff_name"`
	Notes         string    `json:"notes"`
}

// CreateAppointment handles POST /api/v1/appointments
func CreateAppointment(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	appt := &models.Appointment{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerCode:  req.CustomerCode,
		OrderCode:     req.OrderCode,
		ScheduledDate: req.ScheduledDate,
		Duration:      req.Duration,
		Purpose:       req.Purpose,
		StaffID:       req.StaffID,
		StaffName:     req.StaffName,
		Notes:         req.Notes,
		CreatedByID:   &member.ID,
		CreatedByName: member.Name,
	}
	if err := services.GetAppointmentService().Create(appt); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    appt,
	})
}

// UpdateAppointmentRequest represents the request body for appointment updates.
// Pointer fields distinguish "not sent" from zero values.
type UpdateAppointmentRequest struct {
	ScheduledDate *time.Time                `json:"scheduled_date"`
	Duration      *int                      `json:"duration"`
	Purpose       *string                   `json:"purpose"`
	StaffID       *uint                     `json:"staff_id"`
	StaffName     *string                   `json:"staff_name"`
	Status        *models.AppointmentStatus `json:"status"`
	Notes         *string                   `json:"notes"`
}

// UpdateAppointment handles PATCH /api/v1/appointments/:id
func UpdateAppointment(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}
	if !requireRole(c, member, models.RoleSales, models.RoleAdmin) {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.ScheduledDate != nil {
		changes["scheduled_date"] = *req.ScheduledDate
	}
	if req.Duration != nil {
		changes["duration"] = *req.Duration
	}
	if req.Purpose != nil {
		changes["purpose"] = *req.Purpose
	}
	if req.StaffID != nil {
		changes["staff_id"] = *req.StaffID
	}
	if req.StaffName != nil {
		changes["staff_name"] = *req.StaffName
	}
	if req.Status != nil {
		if !models.ValidAppointmentStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown appointment status: " + string(*req.Status),
				},
			})
			return
		}
		changes["status"] = *req.Status
	}
	if req.Notes != nil {
		changes["notes"] = *req.Notes
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "No fields to update",
			},
		})
		return
	}

	id := c.Param("id")
	if err := services.GetAppointmentService().Update(id, changes); err != nil {
		respondServiceError(c, err)
		return
	}

	appt, err := services.GetAppointmentService().GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appt,
	})
}

// GetAppointment handles GET /api/v1/appointments/:id
func GetAppointment(c *gin.Context) {
	if _, ok := currentMember(c); !ok {
		return
	}

	appt, err := services.GetAppointmentService().GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appt,
	})
}

// ListAppointments handles GET /api/v1/appointments with optional filters:
// ?order_code=, ?staff_id=, ?view=today|upcoming
func ListAppointments(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	svc := services.GetAppointmentService()

	if orderCode := c.Query("order_code"); orderCode != "" {
		appts, err := svc.GetByOrderCode(orderCode)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": appts, "count": len(appts)})
		return
	}

	switch c.Query("view") {
	case "today":
		appts, err := svc.GetToday()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": appts, "count": len(appts)})
	case "upcoming", "":
		// Workers only see their own schedule.
		if member.Role == models.RoleWorker {
			appts, err := svc.GetByStaffID(member.ID)
			if err != nil {
				respondServiceError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": appts, "count": len(appts)})
			return
		}
		appts, err := svc.GetUpcoming(50)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": appts, "count": len(appts)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "view must be 'today' or 'upcoming'",
			},
		})
	}
}
