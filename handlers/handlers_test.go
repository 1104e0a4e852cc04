package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resto-qr-pos/cart"
	"resto-qr-pos/config"
	"resto-qr-pos/handlers"
	"resto-qr-pos/middleware"
	"resto-qr-pos/models"
	"resto-qr-pos/notify"
	"resto-qr-pos/payment"
	"resto-qr-pos/projection"
	"resto-qr-pos/qr"
	"resto-qr-pos/routes"
	"resto-qr-pos/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *gin.Engine
	queue    *projection.Queue
	provider *httptest.Server
	token    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.InitDBPath(":memory:")

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"token":        "snap-token",
			"redirect_url": "https://pay.example/redirect",
		})
	}))
	t.Cleanup(provider.Close)

	bus := notify.NewLocal()
	orders := store.NewOrderStore(config.DB, bus)
	queue := projection.NewQueue(orders, bus, store.OrdersChannel)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, queue.Start(ctx))
	t.Cleanup(queue.Stop)

	client := payment.NewClient("SB-test-key")
	client.BaseURL = provider.URL

	api := handlers.NewAPI(cart.NewRegistry(), orders, queue, client, qr.DefaultGenerator{BaseURL: "http://localhost:8080"})

	r := gin.New()
	routes.SetupRoutes(r, api)

	// Seed a cashier account and menu
	cashier := models.User{Name: "Kasir", Email: "kasir@example.com", PasswordHash: "x", Role: models.RoleCashier}
	require.NoError(t, config.DB.Create(&cashier).Error)
	token, err := middleware.GenerateToken(&cashier)
	require.NoError(t, err)

	require.NoError(t, config.DB.Create(&models.MenuItem{Name: "Nasi Goreng", Price: 10000, Category: "Mains", Available: true}).Error)
	require.NoError(t, config.DB.Create(&models.MenuItem{Name: "Es Teh", Price: 5000, Category: "Drinks", Available: true}).Error)

	return &testEnv{router: r, queue: queue, provider: provider, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func (e *testEnv) asCashier() map[string]string {
	return map[string]string{"Authorization": "Bearer " + e.token}
}

func TestWalkInCashOrderIsPaidAndAdvances(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/cashier/orders", gin.H{
		"customer_name": "Budi",
		"phone":         "08123456789",
		"payment_type":  "cash",
		"items": []gin.H{
			{"menu_item_id": 1, "quantity": 2},
		},
	}, env.asCashier())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := resp["order"].(map[string]interface{})
	assert.Equal(t, "paid", order["status"])
	assert.Equal(t, float64(20000), order["total_amount"])
	assert.Nil(t, order["table_id"], "walk-in orders have no table")
	orderID := fmt.Sprintf("%v", resp["order_id"])

	// paid -> preparing -> ready -> completed
	for _, want := range []string{"preparing", "ready", "completed"} {
		w, resp = env.do(t, http.MethodPut, "/api/cashier/orders/"+orderID+"/advance", nil, env.asCashier())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, want, resp["current_status"])
	}

	// Terminal: further advancement is rejected
	w, _ = env.do(t, http.MethodPut, "/api/cashier/orders/"+orderID+"/advance", nil, env.asCashier())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPendingOrderLockedUntilSettlement(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/cashier/orders", gin.H{
		"customer_name": "Sari",
		"phone":         "08123456780",
		"payment_type":  "ewallet",
		"items": []gin.H{
			{"menu_item_id": 1, "quantity": 1},
		},
	}, env.asCashier())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := resp["order"].(map[string]interface{})
	require.Equal(t, "pending", order["status"])
	require.NotNil(t, resp["payment"], "ewallet orders get a payment session")
	orderID := fmt.Sprintf("%v", resp["order_id"])

	// Locked while pending
	w, resp = env.do(t, http.MethodPut, "/api/cashier/orders/"+orderID+"/advance", nil, env.asCashier())
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, resp["reason"], "awaiting payment")

	// Settlement callback arrives
	w, resp = env.do(t, http.MethodPost, "/api/payment/callback", gin.H{
		"order_id":           orderID,
		"transaction_status": "capture",
		"payment_type":       "gopay",
		"transaction_id":     "tx-99",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "paid", resp["status"])

	// Now it advances
	w, resp = env.do(t, http.MethodPut, "/api/cashier/orders/"+orderID+"/advance", nil, env.asCashier())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "preparing", resp["current_status"])
}

func TestExpiredSettlementCancelsOrder(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/cashier/orders", gin.H{
		"customer_name": "Andi",
		"phone":         "08123456781",
		"payment_type":  "ewallet",
		"items":         []gin.H{{"menu_item_id": 2, "quantity": 1}},
	}, env.asCashier())
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := fmt.Sprintf("%v", resp["order_id"])

	w, resp = env.do(t, http.MethodPost, "/api/payment/callback", gin.H{
		"order_id":           orderID,
		"transaction_status": "expire",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", resp["status"])

	w, _ = env.do(t, http.MethodPut, "/api/cashier/orders/"+orderID+"/advance", nil, env.asCashier())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "cancelled is terminal")
}

func TestCartCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	session := map[string]string{"X-Session-ID": "sess-1"}

	w, resp := env.do(t, http.MethodPost, "/api/cart/items", gin.H{
		"menu_item_id": 1, "quantity": 2, "notes": "pedas",
	}, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Adding again merges rather than duplicating
	w, resp = env.do(t, http.MethodPost, "/api/cart/items", gin.H{
		"menu_item_id": 1, "quantity": 1,
	}, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), resp["total_items"])
	assert.Equal(t, float64(30000), resp["total_price"])
	assert.Len(t, resp["items"], 1)

	// Missing name/phone is caught before any write
	w, _ = env.do(t, http.MethodPost, "/api/checkout", gin.H{
		"payment_method": "qris",
	}, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(t, http.MethodPost, "/api/checkout", gin.H{
		"customer_name":  "Dewi",
		"phone":          "08123456782",
		"payment_method": "qris",
	}, session)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := resp["order"].(map[string]interface{})
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, float64(30000), order["total_amount"])
	pay := resp["payment"].(map[string]interface{})
	assert.Equal(t, "snap-token", pay["token"])

	// Cart is cleared after submission
	w, resp = env.do(t, http.MethodGet, "/api/cart", nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["total_items"])

	// Empty cart cannot check out again
	w, _ = env.do(t, http.MethodPost, "/api/checkout", gin.H{
		"customer_name":  "Dewi",
		"phone":          "08123456782",
		"payment_method": "qris",
	}, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueReflectsWritesViaProjection(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		w, _ := env.do(t, http.MethodPost, "/api/cashier/orders", gin.H{
			"customer_name": "Guest",
			"phone":         "0812345678",
			"payment_type":  "cash",
			"items":         []gin.H{{"menu_item_id": 1, "quantity": 1}},
		}, env.asCashier())
		require.Equal(t, http.StatusCreated, w.Code)
	}

	assert.Eventually(t, func() bool {
		return len(env.queue.Snapshot()) == 3
	}, time.Second, 5*time.Millisecond)

	w, resp := env.do(t, http.MethodGet, "/api/cashier/orders", nil, env.asCashier())
	require.Equal(t, http.StatusOK, w.Code)
	orders := resp["orders"].([]interface{})
	require.Len(t, orders, 3)

	// Oldest first regardless of status
	var prev float64
	for _, o := range orders {
		id := o.(map[string]interface{})["id"].(float64)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestCashierCannotManageMenu(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/admin/menu", gin.H{
		"name": "Bakso", "price": 12000,
	}, env.asCashier())
	assert.Equal(t, http.StatusForbidden, w.Code, "cashier lacks the ManageMenu capability")
}
