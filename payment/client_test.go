package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/snap/v1/transactions", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{
			"token":        "snap-token",
			"redirect_url": "https://pay.example/redirect",
		})
	}))
	defer srv.Close()

	c := NewClient("SB-test-key")
	c.BaseURL = srv.URL

	session, err := c.CreateSession(context.Background(), SessionRequest{
		OrderID:      12,
		Amount:       35000,
		Method:       "gopay",
		CustomerName: "Budi",
		Phone:        "08123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "snap-token", session.Token)
	assert.Equal(t, "https://pay.example/redirect", session.RedirectURL)

	td := got["transaction_details"].(map[string]interface{})
	assert.Equal(t, "12", td["order_id"])
	assert.Equal(t, float64(35000), td["gross_amount"])
	assert.Equal(t, []interface{}{"gopay"}, got["enabled_payments"])
}

func TestCreateSessionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_messages":["invalid amount"]}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("SB-test-key")
	c.BaseURL = srv.URL

	_, err := c.CreateSession(context.Background(), SessionRequest{OrderID: 1, Amount: -1})
	assert.Error(t, err)
}

func TestCreateSessionRequiresServerKey(t *testing.T) {
	c := NewClient("")
	_, err := c.CreateSession(context.Background(), SessionRequest{OrderID: 1, Amount: 1000})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestEnabledPayments(t *testing.T) {
	assert.Equal(t, []string{"gopay"}, enabledPayments("gopay"))
	assert.Equal(t, []string{"other_qris"}, enabledPayments("ovo"))
	assert.Equal(t, []string{"qris"}, enabledPayments("qris"))
	assert.Nil(t, enabledPayments("ewallet"), "provider offers all channels")
}

func TestBaseURLSelection(t *testing.T) {
	assert.Equal(t, sandboxBaseURL, (&Client{ServerKey: "SB-Mid-server-x"}).baseURL())
	assert.Equal(t, productionBaseURL, (&Client{ServerKey: "Mid-server-x"}).baseURL())
}
