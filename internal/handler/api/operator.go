package api

import (
	"net/http"
	"strconv"

	reqdto "villabook/internal/handler/dto/request"
	resdto "villabook/internal/handler/dto/response"
	"villabook/internal/handler/middleware"
	"villabook/internal/pkg/errs"
	"villabook/internal/usecase/commands"
	"villabook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OperatorHandler struct {
	bookings  commands.BookingCommands
	cancels   commands.CancellationCommands
	blackouts commands.BlackoutCommands
	views     queries.BookingQueries
	booking   *BookingHandler
}

func NewOperatorHandler(
	bookings commands.BookingCommands,
	cancels commands.CancellationCommands,
	blackouts commands.BlackoutCommands,
	views queries.BookingQueries,
	booking *BookingHandler,
) *OperatorHandler {
	return &OperatorHandler{
		bookings:  bookings,
		cancels:   cancels,
		blackouts: blackouts,
		views:     views,
		booking:   booking,
	}
}

func (h *OperatorHandler) CreateBooking(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.OperatorBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in, err := req.ToOperatorInput(operatorID.String())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.bookings.CreateOperatorBooking(c.Request.Context(), in)
	if err != nil {
		h.booking.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOperatorBooking(result))
}

// ConfirmBooking closes an operator online order. The confirm semantics are
// shared with the self-service path; guest_id links the reservation to the
// guest resolved at order time.
func (h *OperatorHandler) ConfirmBooking(c *gin.Context) {
	h.booking.Confirm(c)
}

func (h *OperatorHandler) ListBookings(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
		limit = parsed
	}

	views, err := h.views.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *OperatorHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	// The body is optional: a plain cancel with no reason is valid.
	var req reqdto.CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	result, err := h.cancels.Cancel(c.Request.Context(), id, operatorID.String(), req.Reason)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errs.Is(err, commands.ErrAlreadyStarted):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Stay has already started",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OperatorHandler) SetRefundStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.RefundStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.cancels.SetRefundStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errs.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errs.Is(err, commands.ErrInvalidRefundStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid refund status",
			})
		case errs.Is(err, commands.ErrNotCancelled):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking is not cancelled",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OperatorHandler) CreateBlackout(c *gin.Context) {
	var req reqdto.CreateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	id, err := h.blackouts.Create(c.Request.Context(), in)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrUnitNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unit not found",
			})
		case errs.Is(err, commands.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *OperatorHandler) ListBlackouts(c *gin.Context) {
	views, err := h.views.ListBlackouts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *OperatorHandler) DeleteBlackout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid blackout ID format",
		})
		return
	}

	if err := h.blackouts.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errs.Is(err, commands.ErrBlackoutNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Blackout not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
