package api

import (
	"net/http"

	resdto "villabook/internal/handler/dto/response"
	"villabook/internal/pkg/errs"
	"villabook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
	units        queries.UnitQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries, units queries.UnitQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		units:        units,
	}
}

func (h *AvailabilityHandler) ListUnits(c *gin.Context) {
	units, err := h.units.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *AvailabilityHandler) GetUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid unit ID format",
		})
		return
	}

	view, err := h.units.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrUnitNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unit not found",
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

func (h *AvailabilityHandler) UnitUnavailable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid unit ID format",
		})
		return
	}

	ranges, err := h.availability.UnavailableForUnit(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrUnitNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unit not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromRanges(ranges))
}

func (h *AvailabilityHandler) PropertyUnavailable(c *gin.Context) {
	ranges, err := h.availability.UnavailableForProperty(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRanges(ranges))
}
