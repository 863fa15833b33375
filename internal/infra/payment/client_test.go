//go:build unit

package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"villabook/internal/infra/payment"
	"villabook/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *payment.Client {
	cfg := config.NewTestConfig().Payment
	cfg.BaseURL = baseURL
	cfg.KeyID = "rzp_test_key"
	return payment.NewClient(cfg)
}

func sign(secret, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := testClient("http://unused")

	valid := sign("test_secret", "order_1", "pay_1")

	assert.True(t, c.VerifySignature("order_1", "pay_1", valid))
	assert.False(t, c.VerifySignature("order_1", "pay_1", valid+"00"))
	assert.False(t, c.VerifySignature("order_2", "pay_1", valid))
	assert.False(t, c.VerifySignature("order_1", "pay_2", valid))
	assert.False(t, c.VerifySignature("order_1", "pay_1", sign("other_secret", "order_1", "pay_1")))
}

func TestCreateOrder(t *testing.T) {
	t.Run("posts the order with basic auth", func(t *testing.T) {
		var gotPath, gotUser string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUser, _, _ = r.BasicAuth()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_abc","receipt":"digest123","status":"created"}`))
		}))
		defer srv.Close()

		order, err := testClient(srv.URL).CreateOrder(context.Background(), 1500000, "INR", "digest123")
		require.NoError(t, err)

		assert.Equal(t, "/v1/orders", gotPath)
		assert.Equal(t, "rzp_test_key", gotUser)
		assert.Equal(t, "order_abc", order.OrderRef)
		assert.Equal(t, "rzp_test_key", order.ProviderKey)
	})

	t.Run("gateway error status surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).CreateOrder(context.Background(), 100, "INR", "r")
		assert.Error(t, err)
	})
}

func TestFetchOrderReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/order_abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","receipt":"digest123","status":"paid"}`))
	}))
	defer srv.Close()

	receipt, err := testClient(srv.URL).FetchOrderReceipt(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, "digest123", receipt)
}
