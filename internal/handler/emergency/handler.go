package emergency

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/internal/handler"
	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/service/emergency"
	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
	"github.com/jwalitptl/doctor-api/pkg/validator"
)

// eventDateLayouts are tried in order; the form sends datetime-local values.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	validator.DateLayout,
}

type Handler struct {
	service emergency.EmergencyService
	now     func() time.Time
}

func NewHandler(service emergency.EmergencyService) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	patients := r.Group("/patients/:id")
	{
		patients.GET("/emergency", h.GetProfile)
		patients.POST("/crisis-protocol", h.UpsertCrisisProtocol)
		patients.POST("/emergency-contacts", h.AddContact)
		patients.DELETE("/emergency-contacts/:contactId", h.DeletePatientContact)
		patients.POST("/behavior-journal", h.AddJournalEntry)
		patients.DELETE("/behavior-journal/:entryId", h.DeletePatientJournalEntry)
	}

	r.DELETE("/emergency-contacts/:id", h.DeleteContact)
	r.DELETE("/behavior-journal/:id", h.DeleteJournalEntry)
}

func (h *Handler) GetProfile(c *gin.Context) {
	patientID, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpsertCrisisProtocol(c *gin.Context) {
	patientID, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}

	var req model.CrisisProtocolRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	protocol, err := h.service.UpsertCrisisProtocol(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, protocol)
}

func (h *Handler) AddContact(c *gin.Context) {
	patientID, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}

	var req model.EmergencyContactRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	contact, err := h.service.AddContact(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := handler.ParamID(c, "id", "emergency contact")
	if !ok {
		return
	}

	if err := h.service.DeleteContact(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "Emergency contact deleted")
}

func (h *Handler) DeletePatientContact(c *gin.Context) {
	patientID, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "contactId", "emergency contact")
	if !ok {
		return
	}

	if err := h.service.DeletePatientContact(c.Request.Context(), patientID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "Emergency contact deleted")
}

func (h *Handler) AddJournalEntry(c *gin.Context) {
	patientID, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}

	var req model.BehaviorJournalRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	eventDate, err := h.eventDate(&req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("event_date must be a date (YYYY-MM-DD) or datetime", err))
		return
	}

	entry, err := h.service.AddJournalEntry(c.Request.Context(), patientID, eventDate, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) DeleteJournalEntry(c *gin.Context) {
	id, ok := handler.ParamID(c, "id", "behavior journal entry")
	if !ok {
		return
	}

	if err := h.service.DeleteJournalEntry(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "Behavior journal entry deleted")
}

func (h *Handler) DeletePatientJournalEntry(c *gin.Context) {
	patientID, ok := handler.ParamID(c, "id", "patient")
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "entryId", "behavior journal entry")
	if !ok {
		return
	}

	if err := h.service.DeletePatientJournalEntry(c.Request.Context(), patientID, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "Behavior journal entry deleted")
}

// eventDate resolves event_date, then date, then the current time.
func (h *Handler) eventDate(req *model.BehaviorJournalRequest) (time.Time, error) {
	raw := strings.TrimSpace(req.EventDate)
	if raw == "" {
		raw = strings.TrimSpace(req.Date)
	}
	if raw == "" {
		return h.now(), nil
	}

	var err error
	for _, layout := range eventDateLayouts {
		t, perr := time.Parse(layout, raw)
		if perr == nil {
			return t, nil
		}
		err = perr
	}
	return time.Time{}, err
}
