package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Errors())
	r.GET("/private", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("db is down")).SetType(gin.ErrorTypePrivate)
	})
	r.GET("/public", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid id")).SetType(gin.ErrorTypePublic)
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "conflict details"})
	})

	cases := []struct {
		name     string
		path     string
		accept   string
		wantCode int
		wantBody string
	}{
		{name: "private error hidden", path: "/private", wantCode: 500, wantBody: `{"error":"internal server error"}`},
		{name: "public error shown", path: "/public", wantCode: 400, wantBody: `{"error":"invalid id"}`},
		{name: "plain text", path: "/public", accept: "text/plain", wantCode: 400, wantBody: "invalid id"},
		{name: "body already written", path: "/written", wantCode: 409, wantBody: `{"error":"conflict details"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantBody, rec.Body.String())
		})
	}
}
