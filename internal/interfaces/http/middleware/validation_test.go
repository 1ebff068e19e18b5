package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupValidatorPhoneTag(t *testing.T) {
	SetupValidator()

	type payload struct {
		Phone string `json:"phone" binding:"required,phone"`
	}

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name     string
		phone    string
		expected int
	}{
		{"dashed mobile number", "010-1234-5678", http.StatusOK},
		{"bare digits", "01012345678", http.StatusOK},
		{"international prefix", "+82 10-1234-5678", http.StatusOK},
		{"letters rejected", "not-a-phone", http.StatusBadRequest},
		{"too short", "123", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"`+tt.phone+`"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
