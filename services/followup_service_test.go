package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

func TestCreateSchedules_ThreeEntriesAtFixedOffsets(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFollowUpService(db)

	order := seedOrder(t, db, models.OrderCompleted, 0, 0)
	completedAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	entries, err := svc.CreateSchedules(order, completedAt)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)

	assert.Equal(t, models.FollowUpTwoDays, entries[0].FollowUpType)
	assert.True(t, entries[0].ScheduledDate.Equal(time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, models.FollowUpSixMonths, entries[1].FollowUpType)
	assert.True(t, entries[1].ScheduledDate.Equal(time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, models.FollowUpTwelveMonths, entries[2].FollowUpType)
	assert.True(t, entries[2].ScheduledDate.Equal(time.Date(2027, 3, 15, 9, 0, 0, 0, time.UTC)))

	for _, e := range entries {
		assert.Equal(t, models.FollowUpPending, e.Status)
		assert.Equal(t, order.Code, e.OrderCode)
		assert.Equal(t, order.CustomerPhone, e.CustomerPhone)
	}
}

func TestCreateSchedules_MonthEndClamping(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFollowUpService(db)

	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	// Aug 31 + 6 months: February has no day 31, so the entry clamps to
	// the end of February instead of drifting into March.
	completedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	entries, err := svc.CreateSchedules(order, completedAt)
	assert.NoError(t, err)

	sixMonths := entries[1].ScheduledDate
	assert.Equal(t, time.February, sixMonths.Month())
	assert.Equal(t, 28, sixMonths.Day())
}

func TestCompleteFollowUp(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFollowUpService(db)
	admin := testMember(t, db, models.RoleAdmin)

	order := seedOrder(t, db, models.OrderCompleted, 0, 0)
	entries, err := svc.CreateSchedules(order, time.Now())
	assert.NoError(t, err)

	err = svc.Complete(entries[0].ID, admin, "Khách hài lòng")
	assert.NoError(t, err)

	var got models.FollowUpSchedule
	db.Where("id = ?", entries[0].ID).First(&got)
	assert.Equal(t, models.FollowUpCompleted, got.Status)
	assert.Equal(t, "Khách hài lòng", got.Notes)
	assert.NotNil(t, got.CompletedDate)
	assert.NotNil(t, got.CompletedByID)
	assert.Equal(t, admin.ID, *got.CompletedByID)

	// Completing twice is a validation error.
	err = svc.Complete(entries[0].ID, admin, "lại lần nữa")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "ALREADY_COMPLETED", ve.Code)
}

func TestCancelFollowUp_OnlyPending(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFollowUpService(db)

	order := seedOrder(t, db, models.OrderCompleted, 0, 0)
	entries, err := svc.CreateSchedules(order, time.Now())
	assert.NoError(t, err)

	assert.NoError(t, svc.Cancel(entries[0].ID))

	var got models.FollowUpSchedule
	db.Where("id = ?", entries[0].ID).First(&got)
	assert.Equal(t, models.FollowUpCancelled, got.Status)

	// A cancelled entry cannot be cancelled again.
	err = svc.Cancel(entries[0].ID)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "NOT_PENDING", ve.Code)
}

func TestMarkOverdue_SweepIsIdempotent(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFollowUpService(db)

	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	// Completed long enough ago that the two-day entry is past due but
	// the six and twelve month ones are not.
	completedAt := time.Now().AddDate(0, 0, -10)
	entries, err := svc.CreateSchedules(order, completedAt)
	assert.NoError(t, err)

	updated, err := svc.MarkOverdue()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var got models.FollowUpSchedule
	db.Where("id = ?", entries[0].ID).First(&got)
	assert.Equal(t, models.FollowUpOverdue, got.Status)

	// Second sweep finds nothing new.
	updated, err = svc.MarkOverdue()
	assert.NoError(t, err)
	assert.Zero(t, updated)

	// Future entries untouched.
	got = models.FollowUpSchedule{}
	db.Where("id = ?", entries[1].ID).First(&got)
	assert.Equal(t, models.FollowUpPending, got.Status)
}

func TestMarkOverdue_SkipsCompletedAndCancelled(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFollowUpService(db)

	order := seedOrder(t, db, models.OrderCompleted, 0, 0)
	entries, err := svc.CreateSchedules(order, time.Now().AddDate(-2, 0, 0))
	assert.NoError(t, err)

	// All three are past due; close one, cancel one.
	assert.NoError(t, svc.Complete(entries[0].ID, nil, ""))
	assert.NoError(t, svc.Cancel(entries[1].ID))

	updated, err := svc.MarkOverdue()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), updated, "only the remaining pending entry flips")

	var got models.FollowUpSchedule
	db.Where("id = ?", entries[0].ID).First(&got)
	assert.Equal(t, models.FollowUpCompleted, got.Status)
	got = models.FollowUpSchedule{}
	db.Where("id = ?", entries[1].ID).First(&got)
	assert.Equal(t, models.FollowUpCancelled, got.Status)
	got = models.FollowUpSchedule{}
	db.Where("id = ?", entries[2].ID).First(&got)
	assert.Equal(t, models.FollowUpOverdue, got.Status)
}

func TestGetOverdue_IncludesUnsweptPending(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewFollowUpService(db)

	order := seedOrder(t, db, models.OrderCompleted, 0, 0)
	_, err := svc.CreateSchedules(order, time.Now().AddDate(0, 0, -5))
	assert.NoError(t, err)

	// No sweep has run, but the two-day entry is already past due.
	overdue, err := svc.GetOverdue()
	assert.NoError(t, err)
	assert.Len(t, overdue, 1)
	assert.Equal(t, models.FollowUpTwoDays, overdue[0].FollowUpType)
}
