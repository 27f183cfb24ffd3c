package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

// AppointmentService handles appointment scheduling, including the
// per-staff double-booking check.
type AppointmentService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAppointmentService creates an appointment service on top of db.
func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db, now: time.Now}
}

// CheckConflict returns the first non-cancelled appointment of the given
// staff member whose slot overlaps [start, start+duration). Intervals are
// half-open: an appointment starting exactly when another ends is not a
// conflict. excludeID skips an appointment being rescheduled.
func (s *AppointmentService) CheckConflict(staffID uint, start time.Time, durationMinutes int, excludeID string) (*models.Appointment, error) {
	if durationMinutes <= 0 {
		durationMinutes = models.DefaultAppointmentDuration
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	var existing []models.Appointment
	if err := s.db.Where("staff_id = ? AND status <> ?", staffID, models.AppointmentCancelled).
		Find(&existing).Error; err != nil {
		return nil, wrapStoreErr("list appointments", err)
	}

	for i := range existing {
		appt := &existing[i]
		if appt.ID == excludeID {
			continue
		}
		if start.Before(appt.End()) && end.After(appt.ScheduledDate) {
			return appt, nil
		}
	}
	return nil, nil
}

// Create validates the slot against the staff member's calendar and
// persists the appointment. On overlap it returns a ConflictError naming
// the colliding time.
func (s *AppointmentService) Create(appt *models.Appointment) error {
	if appt.Duration <= 0 {
		appt.Duration = models.DefaultAppointmentDuration
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentScheduled
	}
	if !models.ValidAppointmentStatus(appt.Status) {
		return NewValidationError("INVALID_STATUS", fmt.Sprintf("Trạng thái lịch hẹn không hợp lệ: %s", appt.Status))
	}

	if appt.StaffID != nil {
		conflict, err := s.CheckConflict(*appt.StaffID, appt.ScheduledDate, appt.Duration, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return &ConflictError{
				Code: "APPOINTMENT_CONFLICT",
				Message: fmt.Sprintf(
					"Nhân viên đã có lịch hẹn khác vào thời gian này: %s",
					conflict.ScheduledDate.Format("02/01/2006 15:04")),
				ConflictingID: conflict.ID,
				ConflictingAt: conflict.ScheduledDate,
			}
		}
	}

	appt.ID = uuid.NewString()
	if err := s.db.Create(appt).Error; err != nil {
		return wrapStoreErr("create appointment", err)
	}
	return nil
}

// Update applies changes to an appointment, re-running the conflict check
// when the staff member or slot changes. The appointment itself is
// excluded from its own conflict check.
func (s *AppointmentService) Update(id string, changes map[string]interface{}) error {
	existing, err := s.GetByID(id)
	if err != nil {
		return err
	}

	staffID := existing.StaffID
	if v, ok := changes["staff_id"].(uint); ok {
		staffID = &v
	}
	scheduled := existing.ScheduledDate
	if v, ok := changes["scheduled_date"].(time.Time); ok {
		scheduled = v
	}
	duration := existing.Duration
	if v, ok := changes["duration"].(int); ok {
		duration = v
	}
	if st, ok := changes["status"].(models.AppointmentStatus); ok && !models.ValidAppointmentStatus(st) {
		return NewValidationError("INVALID_STATUS", fmt.Sprintf("Trạng thái lịch hẹn không hợp lệ: %s", st))
	}

	if staffID != nil {
		conflict, err := s.CheckConflict(*staffID, scheduled, duration, id)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &ConflictError{
				Code: "APPOINTMENT_CONFLICT",
				Message: fmt.Sprintf(
					"Nhân viên đã có lịch hẹn khác vào thời gian này: %s",
					conflict.ScheduledDate.Format("02/01/2006 15:04")),
				ConflictingID: conflict.ID,
				ConflictingAt: conflict.ScheduledDate,
			}
		}
	}

	if err := s.db.Model(&models.Appointment{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return wrapStoreErr("update appointment", err)
	}
	return nil
}

// GetByID fetches one appointment.
func (s *AppointmentService) GetByID(id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, wrapStoreErr("get appointment", err)
	}
	return &appt, nil
}

// GetByOrderCode lists appointments linked to an order.
func (s *AppointmentService) GetByOrderCode(orderCode string) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := s.db.Where("order_code = ?", orderCode).Order("scheduled_date").Find(&appts).Error; err != nil {
		return nil, wrapStoreErr("list appointments by order", err)
	}
	return appts, nil
}

// GetByStaffID lists appointments assigned to a staff member.
func (s *AppointmentService) GetByStaffID(staffID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := s.db.Where("staff_id = ?", staffID).Order("scheduled_date").Find(&appts).Error; err != nil {
		return nil, wrapStoreErr("list appointments by staff", err)
	}
	return appts, nil
}

// GetUpcoming lists the next appointments that are still actionable,
// soonest first.
func (s *AppointmentService) GetUpcoming(limit int) ([]models.Appointment, error) {
	if limit <= 0 {
		limit = 10
	}
	var appts []models.Appointment
	err := s.db.
		Where("scheduled_date >= ? AND status NOT IN ?",
			s.now(),
			[]models.AppointmentStatus{models.AppointmentCancelled, models.AppointmentCompleted}).
		Order("scheduled_date").
		Limit(limit).
		Find(&appts).Error
	if err != nil {
		return nil, wrapStoreErr("list upcoming appointments", err)
	}
	return appts, nil
}

// GetToday lists today's non-cancelled appointments.
func (s *AppointmentService) GetToday() ([]models.Appointment, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appts []models.Appointment
	err := s.db.
		Where("scheduled_date >= ? AND scheduled_date < ? AND status <> ?",
			dayStart, dayEnd, models.AppointmentCancelled).
		Order("scheduled_date").
		Find(&appts).Error
	if err != nil {
		return nil, wrapStoreErr("list today's appointments", err)
	}
	return appts, nil
}
