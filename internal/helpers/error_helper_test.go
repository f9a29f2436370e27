package helpers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/boxoffice/boxoffice/internal/inventory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondWithEngineError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "event not found", err: inventory.ErrEventNotFound, status: http.StatusNotFound, body: `{"error":"Event not found"}`},
		{name: "ticket not found", err: inventory.ErrTicketNotFound, status: http.StatusNotFound},
		{name: "already checked in", err: inventory.ErrAlreadyCheckedIn, status: http.StatusConflict},
		{name: "closed", err: inventory.ErrEventClosed, status: http.StatusBadRequest},
		{
			name:   "capacity",
			err:    &inventory.CapacityError{ZoneName: "GA-100", Remaining: 1, Requested: 2},
			status: http.StatusBadRequest,
			body:   `{"error":"Zone GA-100: only 1 tickets remain (requested: 2)"}`,
		},
		{name: "wrapped allocation", err: fmt.Errorf("tx: %w", &inventory.AllocationError{Message: "Seat A1 is no longer available"}), status: http.StatusBadRequest},
		{name: "storage", err: errors.New("connection reset"), status: http.StatusInternalServerError, body: `{"error":"Internal Server Error"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			helpers.RespondWithEngineError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, w.Body.String())
			}
		})
	}
}
