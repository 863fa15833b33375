// Package payment talks to a Razorpay-compatible gateway over its REST API
// and verifies its HMAC payment attestations.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"villabook/internal/pkg/config"
	"villabook/internal/pkg/errs"
	"villabook/internal/usecase/commands"
)

const providerName = "razorpay"

type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Provider() string { return providerName }

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID      string `json:"id"`
	Receipt string `json:"receipt"`
	Status  string `json:"status"`
}

// CreateOrder registers an order with the gateway. Amount is in the
// currency's minor units, per the gateway contract.
func (c *Client) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (commands.PaymentOrder, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return commands.PaymentOrder{}, errs.Wrap(err, "failed to encode order request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return commands.PaymentOrder{}, errs.Wrap(err, "failed to build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	var order orderResponse
	if err := c.do(req, &order); err != nil {
		return commands.PaymentOrder{}, err
	}
	if order.ID == "" {
		return commands.PaymentOrder{}, errs.New("gateway returned an order without an id")
	}

	return commands.PaymentOrder{OrderRef: order.ID, ProviderKey: c.keyID}, nil
}

func (c *Client) FetchOrderReceipt(ctx context.Context, orderRef string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/orders/"+orderRef, nil)
	if err != nil {
		return "", errs.Wrap(err, "failed to build order fetch request")
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	var order orderResponse
	if err := c.do(req, &order); err != nil {
		return "", err
	}
	return order.Receipt, nil
}

// VerifySignature recomputes the gateway's HMAC-SHA256 over
// "orderRef|paymentRef" with the key secret and compares in constant time.
func (c *Client) VerifySignature(orderRef, paymentRef, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.New(fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode gateway response")
	}
	return nil
}
