package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"journeatz-api/auth"
	"journeatz-api/handlers"
	"journeatz-api/middleware"
	"journeatz-api/models"
	"journeatz-api/routes"
	"journeatz-api/storage"
)

var dbSeq int

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.Init([]byte("handler-test-secret"))

	dbSeq++
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Driver{}, &models.Kitchen{}, &models.MenuItem{},
		&models.Customer{}, &models.Order{}, &models.OrderItem{}, &models.OrderStatusHistory{},
	))

	previous := storage.Current()
	storage.Use(storage.NewGorm(db))
	t.Cleanup(func() { storage.Use(previous) })

	authSvc := auth.NewService(storage.Current(), false)

	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, handlers.NewAuthHandler(authSvc))
	return r
}

func performRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register creates an account through the API and returns its token.
func register(t *testing.T, r *gin.Engine, email, role string) string {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/auth/register", gin.H{
		"email":    email,
		"password": "secret123",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// myKitchenID fetches the kitchen auto-created for a kitchen-role account.
func myKitchenID(t *testing.T, r *gin.Engine, token string) string {
	t.Helper()
	w := performRequest(r, http.MethodGet, "/api/kitchens/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	kitchen := decodeBody(t, w)["kitchen"].(map[string]interface{})
	return kitchen["id"].(string)
}

// myDriverID fetches the driver profile auto-created at driver signup.
func myDriverID(t *testing.T, r *gin.Engine, token string) string {
	t.Helper()
	w := performRequest(r, http.MethodGet, "/api/drivers/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	driver := decodeBody(t, w)["driver"].(map[string]interface{})
	return driver["id"].(string)
}

// placeOrder submits a minimal opaque-items order and returns the order map.
func placeOrder(t *testing.T, r *gin.Engine, token, kitchenID string) map[string]interface{} {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/orders", gin.H{
		"kitchen_id":       kitchenID,
		"delivery_address": "1 Main St",
		"total_amount":     2598,
		"items":            []gin.H{{"name": "Pad Thai", "quantity": 2}},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["order"].(map[string]interface{})
}
