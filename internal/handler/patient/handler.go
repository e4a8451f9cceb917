package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/internal/handler"
	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/service/patient"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.PatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}

	var req model.PatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.service.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
