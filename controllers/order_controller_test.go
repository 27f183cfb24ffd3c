package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

func seedTestOrder(t *testing.T, db *gorm.DB, code string, status models.OrderStatus, beforePhotos int) *models.Order {
	t.Helper()
	order := &models.Order{
		Code:          code,
		CustomerName:  "Nguyễn Văn A",
		CustomerPhone: "0901234567",
		Status:        status,
		Deposit:       10,
		DepositType:   models.DiscountPercentage,
		Products: []models.Product{
			{Name: "Tủ gỗ sồi", Quantity: 1, Price: 1000000},
		},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	for i := 0; i < beforePhotos; i++ {
		img := models.ProductImage{ProductID: order.Products[0].ID, Phase: models.ImageBefore, S3Key: "before.png"}
		if err := db.Create(&img).Error; err != nil {
			t.Fatalf("Failed to create before photo: %v", err)
		}
	}
	return order
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	seedMember(t, db, "auth0|sales-1", "Bán Hàng", "sales@xoxo-studio.com", models.RoleSales)
	seedMember(t, db, "auth0|worker-2", "Thợ Hai", "worker2@xoxo-studio.com", models.RoleWorker)

	validBody := map[string]interface{}{
		"customer_name":  "Trần Thị B",
		"customer_phone": "0912345678",
		"products": []map[string]interface{}{
			{"name": "Bàn ăn", "quantity": 2, "price": 500000},
		},
	}

	tests := []struct {
		name           string
		auth0ID        string
		role           string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Sales creates an order",
			auth0ID:        "auth0|sales-1",
			role:           models.RoleSales,
			body:           validBody,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Worker is forbidden",
			auth0ID:        "auth0|worker-2",
			role:           models.RoleWorker,
			body:           validBody,
			expectedStatus: http.StatusForbidden,
			expectedError:  "FORBIDDEN",
		},
		{
			name:    "Missing products is rejected",
			auth0ID: "auth0|sales-1",
			role:    models.RoleSales,
			body: map[string]interface{}{
				"customer_name":  "Trần Thị B",
				"customer_phone": "0912345678",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/orders", mockAuthMiddleware(tt.auth0ID, tt.role, "t"), CreateOrder)

			body, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			data := response["data"].(map[string]interface{})
			assert.NotEmpty(t, data["code"])
			assert.Equal(t, string(models.OrderPending), data["status"])
		})
	}
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	sales := seedMember(t, db, "auth0|sales-3", "Bán Hàng Ba", "sales3@xoxo-studio.com", models.RoleSales)

	newRouter := func() *gin.Engine {
		router := setupTestRouter()
		router.POST("/orders/:code/status",
			mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"),
			UpdateOrderStatus,
		)
		return router
	}

	post := func(router *gin.Engine, code string, body map[string]interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
		payload, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/orders/"+code+"/status", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		return w, response
	}

	t.Run("Confirm without before-photos fails with 400", func(t *testing.T) {
		seedTestOrder(t, db, "ORDTEST00A01", models.OrderPending, 0)

		w, response := post(newRouter(), "ORDTEST00A01", map[string]interface{}{
			"status":          "confirmed",
			"is_deposit_paid": true,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "MISSING_PRODUCT_IMAGES", errorData["code"])
	})

	t.Run("Confirm without deposit confirmation fails with 400", func(t *testing.T) {
		seedTestOrder(t, db, "ORDTEST00A02", models.OrderPending, 1)

		w, response := post(newRouter(), "ORDTEST00A02", map[string]interface{}{
			"status": "confirmed",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "DEPOSIT_NOT_CONFIRMED", errorData["code"])
	})

	t.Run("Confirm succeeds and reports deposit math", func(t *testing.T) {
		seedTestOrder(t, db, "ORDTEST00A03", models.OrderPending, 1)

		w, response := post(newRouter(), "ORDTEST00A03", map[string]interface{}{
			"status":          "confirmed",
			"is_deposit_paid": true,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, response["success"].(bool))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, string(models.OrderConfirmed), data["status"])
		assert.Equal(t, float64(100000), data["deposit_amount"])
		assert.Equal(t, true, data["is_deposit_paid"])
	})

	t.Run("Unknown status fails with 400", func(t *testing.T) {
		seedTestOrder(t, db, "ORDTEST00A04", models.OrderPending, 1)

		w, response := post(newRouter(), "ORDTEST00A04", map[string]interface{}{
			"status": "shipped",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_STATUS", errorData["code"])
	})

	t.Run("Unknown order fails with 404", func(t *testing.T) {
		w, response := post(newRouter(), "ORDNOPE00000", map[string]interface{}{
			"status":          "confirmed",
			"is_deposit_paid": true,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "NOT_FOUND", errorData["code"])
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	worker := seedMember(t, db, "auth0|worker-4", "Thợ Bốn", "worker4@xoxo-studio.com", models.RoleWorker)
	seedTestOrder(t, db, "ORDTEST00B01", models.OrderPending, 0)

	router := setupTestRouter()
	router.GET("/orders/:code", mockAuthMiddleware(worker.Auth0ID, worker.Role, "t"), GetOrder)

	req, _ := http.NewRequest(http.MethodGet, "/orders/ORDTEST00B01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))

	summary := response["summary"].(map[string]interface{})
	assert.Equal(t, float64(1000000), summary["subtotal"])
	assert.Equal(t, float64(1000000), summary["total"])
	assert.Equal(t, float64(100000), summary["deposit_value"])

	req, _ = http.NewRequest(http.MethodGet, "/orders/ORDMISSING00", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderEndpoint_UnknownMember(t *testing.T) {
	setupControllerTestDB(t)

	router := setupTestRouter()
	router.GET("/orders/:code", mockAuthMiddleware("auth0|stranger", models.RoleWorker, "t"), GetOrder)

	req, _ := http.NewRequest(http.MethodGet, "/orders/ORDTEST00C01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "MEMBER_NOT_FOUND", errorData["code"])
}

func TestListOrdersEndpoint_FilterByStatus(t *testing.T) {
	db := setupControllerTestDB(t)
	sales := seedMember(t, db, "auth0|sales-5", "Bán Hàng Năm", "sales5@xoxo-studio.com", models.RoleSales)
	seedTestOrder(t, db, "ORDTEST00D01", models.OrderPending, 0)
	seedTestOrder(t, db, "ORDTEST00D02", models.OrderInProgress, 0)

	router := setupTestRouter()
	router.GET("/orders", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), ListOrders)

	req, _ := http.NewRequest(http.MethodGet, "/orders?status=in_progress", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	order := data[0].(map[string]interface{})
	assert.Equal(t, "ORDTEST00D02", order["code"])
}

func TestListOrderReceiptsEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	sales := seedMember(t, db, "auth0|sales-6", "Bán Hàng Sáu", "sales6@xoxo-studio.com", models.RoleSales)
	order := seedTestOrder(t, db, "ORDTEST00E01", models.OrderPending, 0)

	tx := models.Transaction{
		ID:        uuid.NewString(),
		OrderCode: order.Code,
		Type:      models.TransactionDeposit,
		Amount:    100000,
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	router := setupTestRouter()
	router.GET("/orders/:code/receipts", mockAuthMiddleware(sales.Auth0ID, sales.Role, "t"), ListOrderReceipts)

	req, _ := http.NewRequest(http.MethodGet, "/orders/ORDTEST00E01/receipts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	receipt := data[0].(map[string]interface{})
	assert.Equal(t, float64(100000), receipt["amount"])
}
