package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPanickingRequestIsLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	s := &Server{
		config: Config{AllowedOrigins: []string{"http://localhost:3000"}},
		logger: slog.New(slog.NewTextHandler(&logs, nil)),
	}

	router := gin.New()
	router.Use(s.middleware()...)
	router.GET("/boom", func(c *gin.Context) {
		panic("handler exploded")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "path=/boom")
	assert.Contains(t, logs.String(), "status=500")
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestGinMode(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, ginMode(false))
	assert.Equal(t, gin.DebugMode, ginMode(true))
}
