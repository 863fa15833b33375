//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"villabook/internal/handler/api"
	"villabook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubCancellationCommands struct {
	result    *commands.CancelResult
	err       error
	gotReason string
	gotStatus string
}

func (s *stubCancellationCommands) Cancel(_ context.Context, id uuid.UUID, _, reason string) (*commands.CancelResult, error) {
	s.gotReason = reason
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &commands.CancelResult{ReservationID: id}, nil
}

func (s *stubCancellationCommands) SetRefundStatus(_ context.Context, _ uuid.UUID, status string) error {
	s.gotStatus = status
	return s.err
}

func operatorRouter(cancels commands.CancellationCommands) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	booking := api.NewBookingHandler(&stubBookingCommands{}, &stubBookingQueries{})
	h := api.NewOperatorHandler(&stubBookingCommands{}, cancels, nil, &stubBookingQueries{}, booking)

	asOperator := func(c *gin.Context) {
		c.Set("user_id", uuid.New())
	}
	router.POST("/api/operator/bookings/:id/cancel", asOperator, h.CancelBooking)
	router.PATCH("/api/operator/bookings/:id/refund", asOperator, h.SetRefundStatus)
	return router
}

func TestCancelBookingHandler(t *testing.T) {
	id := uuid.NewString()

	t.Run("body is optional", func(t *testing.T) {
		cancels := &stubCancellationCommands{}
		router := operatorRouter(cancels)

		req := httptest.NewRequest(http.MethodPost, "/api/operator/bookings/"+id+"/cancel", nil)
		rec := newRecorder(router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, cancels.gotReason)
	})

	t.Run("reason is passed through", func(t *testing.T) {
		cancels := &stubCancellationCommands{}
		router := operatorRouter(cancels)

		rec := postJSON(router, "/api/operator/bookings/"+id+"/cancel", `{"reason":"guest request"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "guest request", cancels.gotReason)
	})

	t.Run("started stay maps to 422", func(t *testing.T) {
		router := operatorRouter(&stubCancellationCommands{err: commands.ErrAlreadyStarted})

		req := httptest.NewRequest(http.MethodPost, "/api/operator/bookings/"+id+"/cancel", nil)
		rec := newRecorder(router, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestSetRefundStatusHandler(t *testing.T) {
	id := uuid.NewString()

	patchJSON := func(router *gin.Engine, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/operator/bookings/"+id+"/refund", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return newRecorder(router, req)
	}

	t.Run("approved settles", func(t *testing.T) {
		cancels := &stubCancellationCommands{}
		router := operatorRouter(cancels)

		rec := patchJSON(router, `{"status":"approved"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "approved", cancels.gotStatus)
	})

	t.Run("pending is not an accepted target", func(t *testing.T) {
		cancels := &stubCancellationCommands{}
		router := operatorRouter(cancels)

		rec := patchJSON(router, `{"status":"pending"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, cancels.gotStatus)
	})
}
