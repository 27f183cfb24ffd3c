package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

func TestCreateAppointmentEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	sales := seedMember(t, db, "auth0|sales-a1", "Bán Hàng", "sales-a1@xoxo-studio.com", models.RoleSales)
	worker := seedMember(t, db, "auth0|worker-a1", "Thợ", "worker-a1@xoxo-studio.com", models.RoleWorker)

	payload := map[string]interface{}{
		"customer_name":  "Nguyễn Văn A",
		"customer_phone": "0901234567",
		"scheduled_date": "2026-09-10T10:00:00+07:00",
		"purpose":        "Tư vấn mẫu tủ bếp",
	}

	// Workers may not book appointments.
	router := setupTestRouter()
	router.POST("/appointments", mockAuthMiddleware(worker.Auth0ID, worker.Role, "t"), CreateAppointment)

	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	router = setupTestRouter()
	router.POST("/appointments", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), CreateAppointment)

	req, _ = http.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	response := decodeBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, string(models.AppointmentScheduled), data["status"])
	assert.Equal(t, float64(60), data["duration"], "duration defaults to an hour")
	assert.Equal(t, sales.Name, data["created_by_name"])
}

func TestCreateAppointmentEndpoint_ConflictReturns409(t *testing.T) {
	db := setupControllerTestDB(t)
	sales := seedMember(t, db, "auth0|sales-a2", "Bán Hàng Hai", "sales-a2@xoxo-studio.com", models.RoleSales)
	staff := seedMember(t, db, "auth0|worker-a2", "Thợ Hai", "worker-a2@xoxo-studio.com", models.RoleWorker)

	router := setupTestRouter()
	router.POST("/appointments", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), CreateAppointment)

	book := func(at string) *httptest.ResponseRecorder {
		payload := map[string]interface{}{
			"customer_name":  "Trần Thị B",
			"customer_phone": "0912345678",
			"scheduled_date": at,
			"purpose":        "Giao hàng",
			"staff_id":       staff.ID,
			"staff_name":     staff.Name,
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, book("2026-09-10T10:00:00+07:00").Code)

	w := book("2026-09-10T10:30:00+07:00")
	assert.Equal(t, http.StatusConflict, w.Code)

	response := decodeBody(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "APPOINTMENT_CONFLICT", errorData["code"])
}

func TestUpdateAppointmentEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	sales := seedMember(t, db, "auth0|sales-a3", "Bán Hàng Ba", "sales-a3@xoxo-studio.com", models.RoleSales)

	router := setupTestRouter()
	router.POST("/appointments", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), CreateAppointment)
	router.PATCH("/appointments/:id", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), UpdateAppointment)

	payload := map[string]interface{}{
		"customer_name":  "Lê Văn C",
		"customer_phone": "0923456789",
		"scheduled_date": "2026-09-11T14:00:00+07:00",
		"purpose":        "Nghiệm thu",
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	apptID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	// Empty updates are rejected.
	req, _ = http.NewRequest(http.MethodPatch, "/appointments/"+apptID, bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown status values are rejected.
	body, _ = json.Marshal(map[string]interface{}{"status": "postponed"})
	req, _ = http.NewRequest(http.MethodPatch, "/appointments/"+apptID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Marking the visit complete.
	body, _ = json.Marshal(map[string]interface{}{"status": "completed", "notes": "Khách hài lòng"})
	req, _ = http.NewRequest(http.MethodPatch, "/appointments/"+apptID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, string(models.AppointmentCompleted), data["status"])
	assert.Equal(t, "Khách hài lòng", data["notes"])
}

func TestListAppointmentsEndpoint_WorkerSeesOwnSchedule(t *testing.T) {
	db := setupControllerTestDB(t)
	sales := seedMember(t, db, "auth0|sales-a4", "Bán Hàng Bốn", "sales-a4@xoxo-studio.com", models.RoleSales)
	worker := seedMember(t, db, "auth0|worker-a4", "Thợ Bốn", "worker-a4@xoxo-studio.com", models.RoleWorker)

	router := setupTestRouter()
	router.POST("/appointments", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), CreateAppointment)

	createFor := func(staffID *uint, staffName *string, at time.Time) {
		payload := map[string]interface{}{
			"customer_name":  "Nguyễn Văn A",
			"customer_phone": "0901234567",
			"scheduled_date": at.Format(time.RFC3339),
			"purpose":        "Lắp đặt",
		}
		if staffID != nil {
			payload["staff_id"] = *staffID
			payload["staff_name"] = *staffName
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPost, "/appointments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("Failed to create appointment: %d %s", w.Code, w.Body.String())
		}
	}

	future := time.Now().Add(72 * time.Hour)
	createFor(&worker.ID, &worker.Name, future)
	createFor(nil, nil, future.Add(2*time.Hour))

	// The worker only sees the visit assigned to them.
	listRouter := setupTestRouter()
	listRouter.GET("/appointments", mockAuthMiddleware(worker.Auth0ID, worker.Role, "t"), ListAppointments)

	req, _ := http.NewRequest(http.MethodGet, "/appointments", nil)
	w := httptest.NewRecorder()
	listRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	// Sales sees everything upcoming.
	listRouter = setupTestRouter()
	listRouter.GET("/appointments", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), ListAppointments)

	req, _ = http.NewRequest(http.MethodGet, "/appointments", nil)
	w = httptest.NewRecorder()
	listRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	// Unknown views are rejected.
	req, _ = http.NewRequest(http.MethodGet, "/appointments?view=yesterday", nil)
	w = httptest.NewRecorder()
	listRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
