package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/internal/handler"
	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/service/appointment"
	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
	"github.com/jwalitptl/doctor-api/pkg/validator"
)

type Handler struct {
	service appointment.AppointmentService
}

func NewHandler(service appointment.AppointmentService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:date", h.ListAppointmentsByDate)
		appointments.POST("", h.CreateAppointment)
	}
}

// ListAppointments serves the optional ?date= filter.
func (h *Handler) ListAppointments(c *gin.Context) {
	h.list(c, c.Query("date"))
}

func (h *Handler) ListAppointmentsByDate(c *gin.Context) {
	h.list(c, c.Param("date"))
}

func (h *Handler) list(c *gin.Context, date string) {
	if date != "" {
		if _, err := time.Parse(validator.DateLayout, date); err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("date must be a date (YYYY-MM-DD)", err))
			return
		}
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), model.AppointmentFilters{Date: date})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	a, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}
