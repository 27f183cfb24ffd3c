package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

// WorkflowService manages individual workflow steps. Each step is an
// explicit staff action; completing one step never cascades to others.
type WorkflowService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewWorkflowService creates a workflow service on top of db.
func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db, now: time.Now}
}

// GetStep fetches one workflow step.
func (s *WorkflowService) GetStep(id uint) (*models.WorkflowStep, error) {
	var step models.WorkflowStep
	if err := s.db.First(&step, id).Error; err != nil {
		return nil, wrapStoreErr("get workflow step", err)
	}
	return &step, nil
}

// SetDone marks a step done or not done. Undoing a step also clears any
// approval, since an approval of unfinished work is meaningless.
func (s *WorkflowService) SetDone(id uint, done bool) (*models.WorkflowStep, error) {
	step, err := s.GetStep(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{
		"is_done":    done,
		"updated_at": s.now(),
	}
	if !done {
		changes["approved_by_id"] = nil
		changes["approved_by_name"] = nil
		changes["approved_at"] = nil
	}
	if err := s.db.Model(step).Updates(changes).Error; err != nil {
		return nil, wrapStoreErr("update workflow step", err)
	}

	step.IsDone = done
	if !done {
		step.ApprovedByID = nil
		step.ApprovedByName = nil
		step.ApprovedAt = nil
	}
	return step, nil
}

// Approve records an approval on a finished step. Approving an
// unfinished step is a validation error.
func (s *WorkflowService) Approve(id uint, approver *models.Member) (*models.WorkflowStep, error) {
	step, err := s.GetStep(id)
	if err != nil {
		return nil, err
	}
	if !step.IsDone {
		return nil, NewValidationError("STEP_NOT_DONE",
			"Chỉ có thể duyệt công đoạn đã hoàn thành.")
	}

	now := s.now()
	changes := map[string]interface{}{
		"approved_by_id":   approver.ID,
		"approved_by_name": approver.Name,
		"approved_at":      now,
		"updated_at":       now,
	}
	if err := s.db.Model(step).Updates(changes).Error; err != nil {
		return nil, wrapStoreErr("approve workflow step", err)
	}

	step.ApprovedByID = &approver.ID
	step.ApprovedByName = &approver.Name
	step.ApprovedAt = &now
	return step, nil
}

// AssignMembers replaces the set of member ids assigned to a step.
func (s *WorkflowService) AssignMembers(id uint, memberIDs []string) (*models.WorkflowStep, error) {
	step, err := s.GetStep(id)
	if err != nil {
		return nil, err
	}

	// Updates goes through the struct so the json serializer on Members
	// applies.
	patch := models.WorkflowStep{Members: memberIDs, UpdatedAt: s.now()}
	if err := s.db.Model(step).Select("members", "updated_at").Updates(patch).Error; err != nil {
		return nil, wrapStoreErr("assign workflow members", err)
	}
	step.Members = memberIDs
	return step, nil
}

// ProductProgress returns done and total step counts for a product.
func (s *WorkflowService) ProductProgress(productID uint) (done, total int64, err error) {
	if err := s.db.Model(&models.WorkflowStep{}).
		Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return 0, 0, wrapStoreErr("count workflow steps", err)
	}
	if err := s.db.Model(&models.WorkflowStep{}).
		Where("product_id = ? AND is_done = ?", productID, true).Count(&done).Error; err != nil {
		return 0, 0, wrapStoreErr("count done workflow steps", err)
	}
	return done, total, nil
}
