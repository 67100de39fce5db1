package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gogo-delivery/config"
	"gogo-delivery/delivery"
	"gogo-delivery/handlers"
	"gogo-delivery/middleware"
	"gogo-delivery/models"
	"gogo-delivery/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

type api struct {
	t      *testing.T
	router *gin.Engine
	store  *store.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := config.NewLogger(config.Log{Level: "error"})
	log.Out = io.Discard
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.OpenDB(config.Database{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, log)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	st := store.New(db)
	client, err := delivery.New(st, delivery.Options{Logger: log})
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	SetupRoutes(r, handlers.New(client, secret, time.Hour), secret)
	return &api{t: t, router: r, store: st}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// register signs a user up, applies the role and returns a fresh token.
func (a *api) register(name string, role models.UserRole) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username":   name,
		"password":   "secret123",
		"birth_date": "1990-01-01T00:00:00Z",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	if role != models.RoleCustomer {
		user, err := a.store.UserByName(a.t.Context(), name)
		require.NoError(a.t, err)
		_, err = a.store.SetUserRole(a.t.Context(), user.ID, role)
		require.NoError(a.t, err)
	}
	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": name, "password": "secret123"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode(a.t, w)["token"].(string)
}

func id(t *testing.T, w *httptest.ResponseRecorder, key string) uint {
	t.Helper()
	return uint(decode(t, w)[key].(float64))
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)
	token := a.register("alice", models.RoleCustomer)

	w := a.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = a.do(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = a.do(http.MethodGet, "/api/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "password": "secret123", "birth_date": "1990-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutOverHTTP(t *testing.T) {
	a := newAPI(t)
	manager := a.register("mary", models.RoleManager)
	customer := a.register("alice", models.RoleCustomer)
	rider := a.register("rick", models.RoleRider)

	w := a.do(http.MethodPost, "/api/manager/categories", customer, gin.H{"title": "Pizza"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/manager/categories", manager, gin.H{"title": "Pizza"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	category := id(t, w, "id")

	w = a.do(http.MethodPost, "/api/manager/food", manager, gin.H{
		"title": "Margherita", "category_id": category, "count": 5, "price": "4.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	food := id(t, w, "id")

	w = a.do(http.MethodGet, fmt.Sprintf("/api/categories/%d/food?sort_by=price&order=desc", category), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Pizza"`)

	w = a.do(http.MethodPost, "/api/addresses", customer, gin.H{"locality": "Moscow", "street": "Arbat", "house": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	address := id(t, w, "id")

	w = a.do(http.MethodPost, "/api/orders", customer, gin.H{"address_id": address})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, "empty cart")

	w = a.do(http.MethodPost, "/api/cart", customer, gin.H{"food_id": food, "count": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = a.do(http.MethodPost, "/api/cart", customer, gin.H{"food_id": food, "count": 1})
	require.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodGet, "/api/cart", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_price":"13.5"`)

	w = a.do(http.MethodPost, "/api/orders", customer, gin.H{"address_id": address})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := id(t, w, "order_id")

	w = a.do(http.MethodGet, "/api/orders?status=bogus", rider, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(http.MethodGet, "/api/orders", customer, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPut, fmt.Sprintf("/api/orders/%d/take", order), rider, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(http.MethodPut, fmt.Sprintf("/api/orders/%d/take", order), rider, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPut, fmt.Sprintf("/api/orders/%d/complete", order), rider, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/feedback", order), customer, gin.H{"rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = a.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/feedback", order), customer, gin.H{"comment": "again"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/orders/mine/%d", order), customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"COMPLETED"`)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/manager/food/%d", food), manager, nil)
	require.Equal(t, http.StatusConflict, w.Code, "ordered food is still referenced")
}

func TestPreviewUpload(t *testing.T) {
	a := newAPI(t)
	manager := a.register("mary", models.RoleManager)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("payload", `{"title":"Desserts"}`))
	part, err := mw.CreateFormFile("preview", "cake.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nrest"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/manager/categories", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+manager)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	category := id(t, w, "id")

	w = a.do(http.MethodGet, fmt.Sprintf("/api/previews/category/%d", category), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = a.do(http.MethodGet, "/api/previews/user/1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(http.MethodGet, "/api/previews/food/77", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStateMachineAndHealth(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/api/state-machine", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"from":"PLACED","to":"TAKEN","actor":"rider"`)

	w = a.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
