package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
)

type Service interface {
	GetDashboard(ctx context.Context) (*model.Dashboard, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/dashboard", h.GetDashboard)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
