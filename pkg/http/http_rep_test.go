package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performOn(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/probe", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestWithRepJSON(t *testing.T) {
	w, resp := performOn(t, func(c *gin.Context) {
		WithRepJSON(c, gin.H{"value": 42})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(42), data["value"])
}

func TestWithRepErrCarriesSentinelStatus(t *testing.T) {
	w, resp := performOn(t, func(c *gin.Context) {
		WithRepErr(c, UserNotExist)
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, UserNotExist.Msg, data["message"])
}

func TestWithRepErrConflictStatus(t *testing.T) {
	w, _ := performOn(t, func(c *gin.Context) {
		WithRepErr(c, UserAlreadyExist)
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWithRepErrHidesUnknownErrors(t *testing.T) {
	w, resp := performOn(t, func(c *gin.Context) {
		WithRepErr(c, errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	data := resp.Data.(map[string]any)
	// raw database errors never reach the client
	assert.Equal(t, InternalError.Msg, data["message"])
	assert.NotContains(t, data["message"], "dial tcp")
}

func TestWithRepMsg(t *testing.T) {
	w, resp := performOn(t, func(c *gin.Context) {
		WithRepMsg(c, "done")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "done", data["message"])
}
