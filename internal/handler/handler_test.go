package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/doctor-api/pkg/validator"
)

type body struct {
	Name string `json:"name" binding:"required"`
}

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func serve(r *gin.Engine, method, path, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if !BindJSON(c, &b) {
			return
		}
		c.JSON(http.StatusOK, b)
	})

	tests := []struct {
		name    string
		payload string
		status  int
		body    string
	}{
		{"valid", `{"name":"A"}`, http.StatusOK, `{"name":"A"}`},
		{"missing field", `{}`, http.StatusBadRequest, `{"message":"name is required"}`},
		{"malformed", `{"name":`, http.StatusBadRequest, `{"message":"invalid request body"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodPost, "/", tt.payload)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestParamID(t *testing.T) {
	r := gin.New()
	r.GET("/:id", func(c *gin.Context) {
		id, ok := ParamID(c, "id", "patient")
		if !ok {
			return
		}
		c.String(http.StatusOK, id.String())
	})

	w := serve(r, http.MethodGet, "/3fa85f64-5717-4562-b3fc-2c963f66afa6", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3fa85f64-5717-4562-b3fc-2c963f66afa6", w.Body.String())

	w = serve(r, http.MethodGet, "/42", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"invalid patient ID"}`, w.Body.String())
}
