package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/utils"
)

// FollowUpService manages the post-completion customer check-in schedule.
type FollowUpService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFollowUpService creates a follow-up service on top of db.
func NewFollowUpService(db *gorm.DB) *FollowUpService {
	return &FollowUpService{db: db, now: time.Now}
}

// CreateSchedules creates exactly three follow-up entries for a completed
// order: two days, six calendar months, and twelve calendar months after
// completedAt. All start as pending.
func (s *FollowUpService) CreateSchedules(order *models.Order, completedAt time.Time) ([]models.FollowUpSchedule, error) {
	entries := []models.FollowUpSchedule{
		{FollowUpType: models.FollowUpTwoDays, ScheduledDate: completedAt.AddDate(0, 0, 2)},
		{FollowUpType: models.FollowUpSixMonths, ScheduledDate: utils.AddMonths(completedAt, 6)},
		{FollowUpType: models.FollowUpTwelveMonths, ScheduledDate: utils.AddMonths(completedAt, 12)},
	}

	for i := range entries {
		entries[i].ID = uuid.NewString()
		entries[i].OrderCode = order.Code
		entries[i].CustomerCode = order.CustomerCode
		entries[i].CustomerName = order.CustomerName
		entries[i].CustomerPhone = order.CustomerPhone
		entries[i].Status = models.FollowUpPending

		if err := s.db.Create(&entries[i]).Error; err != nil {
			return nil, wrapStoreErr("create follow-up schedule", err)
		}
	}
	return entries, nil
}

// Complete marks one follow-up entry done, recording who closed it.
func (s *FollowUpService) Complete(id string, actor *models.Member, notes string) error {
	var f models.FollowUpSchedule
	if err := s.db.Where("id = ?", id).First(&f).Error; err != nil {
		return wrapStoreErr("get follow-up", err)
	}
	if f.Status == models.FollowUpCompleted {
		return NewValidationError("ALREADY_COMPLETED", "Lịch chăm sóc này đã được hoàn thành.")
	}

	now := s.now()
	changes := map[string]interface{}{
		"status":         models.FollowUpCompleted,
		"completed_date": now,
		"notes":          notes,
	}
	if actor != nil {
		changes["completed_by_id"] = actor.ID
		changes["completed_by_name"] = actor.Name
	}
	if err := s.db.Model(&models.FollowUpSchedule{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return wrapStoreErr("complete follow-up", err)
	}
	return nil
}

// Cancel marks one follow-up entry cancelled.
func (s *FollowUpService) Cancel(id string) error {
	res := s.db.Model(&models.FollowUpSchedule{}).
		Where("id = ? AND status = ?", id, models.FollowUpPending).
		Update("status", models.FollowUpCancelled)
	if res.Error != nil {
		return wrapStoreErr("cancel follow-up", res.Error)
	}
	if res.RowsAffected == 0 {
		return NewValidationError("NOT_PENDING", "Chỉ có thể hủy lịch chăm sóc đang chờ.")
	}
	return nil
}

// MarkOverdue flips pending entries whose scheduled date has passed to
// overdue, returning how many rows changed. The sweep only ever touches
// pending rows, so running it repeatedly converges: completed, cancelled
// and already-overdue entries are left alone.
func (s *FollowUpService) MarkOverdue() (int64, error) {
	res := s.db.Model(&models.FollowUpSchedule{}).
		Where("status = ? AND scheduled_date < ?", models.FollowUpPending, s.now()).
		Update("status", models.FollowUpOverdue)
	if res.Error != nil {
		return 0, wrapStoreErr("overdue sweep", res.Error)
	}
	return res.RowsAffected, nil
}

// GetByOrderCode lists follow-up entries for an order, soonest first.
func (s *FollowUpService) GetByOrderCode(orderCode string) ([]models.FollowUpSchedule, error) {
	var fs []models.FollowUpSchedule
	if err := s.db.Where("order_code = ?", orderCode).Order("scheduled_date").Find(&fs).Error; err != nil {
		return nil, wrapStoreErr("list follow-ups by order", err)
	}
	return fs, nil
}

// GetPending lists all pending follow-up entries, soonest first.
func (s *FollowUpService) GetPending() ([]models.FollowUpSchedule, error) {
	var fs []models.FollowUpSchedule
	if err := s.db.Where("status = ?", models.FollowUpPending).Order("scheduled_date").Find(&fs).Error; err != nil {
		return nil, wrapStoreErr("list pending follow-ups", err)
	}
	return fs, nil
}

// GetOverdue lists entries already past due: flagged overdue by the
// sweep, plus pending ones the sweep has not visited yet.
func (s *FollowUpService) GetOverdue() ([]models.FollowUpSchedule, error) {
	var fs []models.FollowUpSchedule
	err := s.db.
		Where("status = ? OR (status = ? AND scheduled_date < ?)",
			models.FollowUpOverdue, models.FollowUpPending, s.now()).
		Order("scheduled_date").
		Find(&fs).Error
	if err != nil {
		return nil, wrapStoreErr("list overdue follow-ups", err)
	}
	return fs, nil
}
