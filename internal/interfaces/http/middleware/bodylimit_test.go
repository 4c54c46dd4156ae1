package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	const limit = 64
	statusBody := `{"status":"PAID"}`

	newRouter := func(readErr *error) *gin.Engine {
		r := gin.New()
		r.Use(RequestID(), BodyLimit(limit))
		r.POST("/dues/:id/status", func(c *gin.Context) {
			_, *readErr = io.ReadAll(c.Request.Body)
			if *readErr != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			c.Status(http.StatusNoContent)
		})
		return r
	}

	t.Run("body within limit reaches the handler", func(t *testing.T) {
		var readErr error
		req := httptest.NewRequest(http.MethodPost, "/dues/x/status", strings.NewReader(statusBody))
		w := httptest.NewRecorder()
		newRouter(&readErr).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NoError(t, readErr)
	})

	t.Run("declared length over limit is rejected before the handler", func(t *testing.T) {
		var readErr error
		req := httptest.NewRequest(http.MethodPost, "/dues/x/status", strings.NewReader(strings.Repeat("x", 2*limit)))
		req.Header.Set(RequestIDHeader, "req-413")
		w := httptest.NewRecorder()
		newRouter(&readErr).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
		assert.Contains(t, w.Body.String(), "req-413")
	})

	t.Run("chunked body is cut off while reading", func(t *testing.T) {
		var readErr error
		req := httptest.NewRequest(http.MethodPost, "/dues/x/status", strings.NewReader(strings.Repeat("x", 2*limit)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		newRouter(&readErr).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var maxErr *http.MaxBytesError
		require.True(t, errors.As(readErr, &maxErr))
		assert.Equal(t, int64(limit), maxErr.Limit)
	})
}
