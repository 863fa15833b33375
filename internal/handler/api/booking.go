package api

import (
	"net/http"

	reqdto "villabook/internal/handler/dto/request"
	resdto "villabook/internal/handler/dto/response"
	"villabook/internal/pkg/errs"
	"villabook/internal/usecase/commands"
	"villabook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookings commands.BookingCommands
	views    queries.BookingQueries
}

func NewBookingHandler(bookings commands.BookingCommands, views queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		views:    views,
	}
}

func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.StayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in, err := req.ToStayInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	quote, err := h.bookings.Quote(c.Request.Context(), in)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuote(quote))
}

func (h *BookingHandler) OpenOrder(c *gin.Context) {
	var req reqdto.StayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in, err := req.ToStayInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	order, err := h.bookings.OpenOrder(c.Request.Context(), in)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrder(order))
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in, err := req.ToConfirmInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.bookings.VerifyAndConfirm(c.Request.Context(), in)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.views.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrUnitNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Unit not found",
		})
	case errs.Is(err, commands.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
	case errs.Is(err, commands.ErrCapacityExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Guest count exceeds unit capacity",
		})
	case errs.Is(err, commands.ErrMealCompositionInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Meal composition does not match guest count",
		})
	case errs.Is(err, commands.ErrGuestInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid guest details",
		})
	case errs.Is(err, commands.ErrUnavailableAfterPayment):
		// Payment already captured but the slot was lost; the client must
		// surface the manual refund path, not a retry.
		c.JSON(http.StatusConflict, gin.H{
			"error": "Unit no longer available; payment will be refunded manually",
		})
	case errs.Is(err, commands.ErrUnitUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Unit unavailable for the requested dates",
		})
	case errs.Is(err, commands.ErrSignatureMismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment signature verification failed",
		})
	case errs.Is(err, commands.ErrReceiptMismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order does not match the booking details",
		})
	case errs.Is(err, commands.ErrPaymentGateway):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment gateway error",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
