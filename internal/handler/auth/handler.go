package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/internal/handler"
	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
)

type Service interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
