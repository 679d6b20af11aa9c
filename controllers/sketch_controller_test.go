package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/calloway-denim/atelier-ops-api/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSketchTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Order{}, &models.PipelineStage{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedSketchOrder(t *testing.T, db *gorm.DB) models.Order {
	order := models.Order{
		CustomerID:           "cust-1",
		MeasurementProfileID: "profile-1",
		ProductID:            "prod-1",
		Channel:              models.ChannelDTCWeb,
		Status:               models.StageOrderReceived,
		Quantity:             1,
		UnitPrice:            285,
		TotalPrice:           285,
		OrderDate:            time.Now(),
		PromisedDate:         time.Now().Add(30 * 24 * time.Hour),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

// sketchUploadRequest builds a multipart request carrying one sketch file
func sketchUploadRequest(t *testing.T, url, filename string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("sketch", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadSketchEndpoint(t *testing.T) {
	db := setupSketchTestDB(t)
	config.SetDB(db)

	mockSketch := services.NewMockSketchService()
	mockSketch.SetAsMockForTesting()
	defer services.SetSketchService(nil)

	order := seedSketchOrder(t, db)

	router := setupTestRouter()
	router.POST("/orders/:id/sketch", UploadSketch)

	t.Run("Upload PNG sketch", func(t *testing.T) {
		req := sketchUploadRequest(t, "/orders/"+order.ID+"/sketch", "design.png", []byte("fake png content"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.True(t, response["success"].(bool))

		data := response["data"].(map[string]interface{})
		assert.NotNil(t, data["sketch_s3_key"])
		assert.NotEmpty(t, data["sketch_url"])

		var stored models.Order
		db.First(&stored, "id = ?", order.ID)
		assert.NotNil(t, stored.SketchS3Key)
		assert.True(t, mockSketch.SketchExists(*stored.SketchS3Key))
	})

	t.Run("Replacing a sketch deletes the previous one", func(t *testing.T) {
		var before models.Order
		db.First(&before, "id = ?", order.ID)
		previousKey := *before.SketchS3Key

		req := sketchUploadRequest(t, "/orders/"+order.ID+"/sketch", "revised.png", []byte("second sketch"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, mockSketch.SketchExists(previousKey), "the replaced sketch is removed from storage")

		var after models.Order
		db.First(&after, "id = ?", order.ID)
		assert.NotEqual(t, previousKey, *after.SketchS3Key)
	})

	t.Run("Reject non-PNG upload", func(t *testing.T) {
		req := sketchUploadRequest(t, "/orders/"+order.ID+"/sketch", "design.jpg", []byte("fake jpg content"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_FILE_FORMAT", errorData["code"])
	})

	t.Run("Missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/orders/"+order.ID+"/sketch", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "MISSING_FILE", errorData["code"])
	})

	t.Run("Unknown order", func(t *testing.T) {
		req := sketchUploadRequest(t, "/orders/missing-id/sketch", "design.png", []byte("fake png content"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUploadSketchEndpoint_StorageUnavailable(t *testing.T) {
	db := setupSketchTestDB(t)
	config.SetDB(db)

	services.SetSketchService(nil)

	order := seedSketchOrder(t, db)

	router := setupTestRouter()
	router.POST("/orders/:id/sketch", UploadSketch)

	req := sketchUploadRequest(t, "/orders/"+order.ID+"/sketch", "design.png", []byte("fake png content"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "STORAGE_UNAVAILABLE", errorData["code"])
}

func TestDeleteSketchEndpoint(t *testing.T) {
	db := setupSketchTestDB(t)
	config.SetDB(db)

	mockSketch := services.NewMockSketchService()
	mockSketch.SetAsMockForTesting()
	defer services.SetSketchService(nil)

	order := seedSketchOrder(t, db)

	router := setupTestRouter()
	router.POST("/orders/:id/sketch", UploadSketch)
	router.DELETE("/orders/:id/sketch", DeleteSketch)

	// Attach a sketch first
	req := sketchUploadRequest(t, "/orders/"+order.ID+"/sketch", "design.png", []byte("fake png content"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	db.First(&stored, "id = ?", order.ID)
	sketchKey := *stored.SketchS3Key

	// Delete it
	req = httptest.NewRequest(http.MethodDelete, "/orders/"+order.ID+"/sketch", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, mockSketch.SketchExists(sketchKey))

	var after models.Order
	db.First(&after, "id = ?", order.ID)
	assert.Nil(t, after.SketchS3Key)

	// Deleting again reports there is no sketch
	req = httptest.NewRequest(http.MethodDelete, "/orders/"+order.ID+"/sketch", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "SKETCH_NOT_FOUND", errorData["code"])
}
