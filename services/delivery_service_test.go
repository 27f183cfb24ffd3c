package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

func newTestDeliveryService(db *gorm.DB) *DeliveryService {
	return NewDeliveryService(db, NewAppointmentService(db), NewMessageService(db, time.Hour))
}

func TestSetDeliveryInfo_InvalidMethod(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestDeliveryService(db)
	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	_, _, err := svc.Set(order.Code, SetDeliveryInfoInput{Method: "carrier_pigeon"}, nil)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "INVALID_DELIVERY_METHOD", ve.Code)
}

func TestSetDeliveryInfo_HomeDelivery(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestDeliveryService(db)
	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	info, warnings, err := svc.Set(order.Code, SetDeliveryInfoInput{
		Method:  models.DeliveryHome,
		Address: "12 Lý Thường Kiệt, Hà Nội",
	}, nil)

	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, models.DeliveryHome, info.Method)

	// Home delivery creates no pickup appointment.
	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	assert.Zero(t, count)
}

func TestSetDeliveryInfo_StorePickupCreatesAppointment(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestDeliveryService(db)
	sales := testMember(t, db, models.RoleSales)
	staff := testMember(t, db, models.RoleWorker)
	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	pickup := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	info, warnings, err := svc.Set(order.Code, SetDeliveryInfoInput{
		Method:        models.DeliveryStore,
		EstimatedDate: &pickup,
		StaffID:       &staff.ID,
	}, sales)

	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.NotNil(t, info.EstimatedDate)

	// A 30-minute pickup appointment exists, linked to the order.
	var appts []models.Appointment
	db.Find(&appts)
	assert.Len(t, appts, 1)
	assert.Equal(t, 30, appts[0].Duration)
	assert.Equal(t, "Khách hàng đến lấy hàng", appts[0].Purpose)
	assert.NotNil(t, appts[0].OrderCode)
	assert.Equal(t, order.Code, *appts[0].OrderCode)
	assert.True(t, appts[0].ScheduledDate.Equal(pickup))

	var got models.Order
	db.Where("code = ?", order.Code).First(&got)
	assert.NotNil(t, got.AppointmentID)
	assert.Equal(t, appts[0].ID, *got.AppointmentID)
}

func TestSetDeliveryInfo_PickupConflictBecomesWarning(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestDeliveryService(db)
	staff := testMember(t, db, models.RoleWorker)
	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	pickup := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)

	// The staff member is already booked over the pickup slot.
	busy := &models.Appointment{
		CustomerName:  "Khách khác",
		CustomerPhone: "0911111111",
		ScheduledDate: pickup.Add(-15 * time.Minute),
		Duration:      60,
		Purpose:       "Tư vấn",
		StaffID:       &staff.ID,
	}
	assert.NoError(t, NewAppointmentService(db).Create(busy))

	info, warnings, err := svc.Set(order.Code, SetDeliveryInfoInput{
		Method:        models.DeliveryStore,
		EstimatedDate: &pickup,
		StaffID:       &staff.ID,
	}, nil)

	// The delivery info itself is saved; the appointment failure is a
	// warning, not an error.
	assert.NoError(t, err)
	assert.NotNil(t, info)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Không thể tạo lịch hẹn lấy hàng")

	var got models.Order
	db.Where("code = ?", order.Code).First(&got)
	assert.Nil(t, got.AppointmentID)
}

func TestSetDeliveryInfo_UpsertKeepsOneRow(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestDeliveryService(db)
	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	_, _, err := svc.Set(order.Code, SetDeliveryInfoInput{
		Method:  models.DeliveryHome,
		Address: "Địa chỉ cũ",
	}, nil)
	assert.NoError(t, err)

	info, _, err := svc.Set(order.Code, SetDeliveryInfoInput{
		Method:  models.DeliveryHome,
		Address: "Địa chỉ mới",
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Địa chỉ mới", info.Address)

	var count int64
	db.Model(&models.DeliveryInfo{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetDeliveryInfo_NotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestDeliveryService(db)
	order := seedOrder(t, db, models.OrderCompleted, 0, 0)

	_, err := svc.Get(order.Code)
	assert.True(t, IsNotFound(err))
}
