package httpHandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-server/apperrors"

	"github.com/gin-gonic/gin"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", apperrors.Validation([]string{"Please add a price", "Please add a city"}), http.StatusBadRequest, "Please add a price, Please add a city"},
		{"invalid input", apperrors.InvalidInput("page must be a positive whole number"), http.StatusBadRequest, "page must be a positive whole number"},
		{"not found", apperrors.NotFound("Property not found"), http.StatusNotFound, "Property not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.NotFound("User not found")), http.StatusNotFound, "lookup: User not found"},
		{"forbidden", apperrors.Forbidden("Not authorized to delete this property"), http.StatusForbidden, "Not authorized to delete this property"},
		{"unauthorized", apperrors.New(apperrors.ErrUnauthorized, "Not authorized to access this route"), http.StatusUnauthorized, "Not authorized to access this route"},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError, "Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Success || body.Message != tt.wantMessage {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestEmptyIfNil(t *testing.T) {
	raw, _ := json.Marshal(emptyIfNil[int](nil))
	if string(raw) != "[]" {
		t.Errorf("expected [], got %s", raw)
	}
}
