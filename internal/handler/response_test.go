package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/pkg/apperror"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, *Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, &resp
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"booking not found", model.ErrBookingNotFound, http.StatusNotFound},
		{"draft not found", model.ErrDraftNotFound, http.StatusNotFound},
		{"illegal transition", model.ErrIllegalTransition, http.StatusConflict},
		{"payment proof required", model.ErrPaymentProofRequired, http.StatusConflict},
		{"request already final", model.ErrRequestAlreadyFinal, http.StatusConflict},
		{"email taken", model.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", model.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not booking owner", model.ErrNotBookingOwner, http.StatusForbidden},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := respond(t, tt.err)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "error", resp.Status)
		})
	}
}

func TestRespondErrorWrappedSentinel(t *testing.T) {
	wrapped := errors.New("transition failed: " + model.ErrIllegalTransition.Error())
	w, _ := respond(t, wrapped)
	// Only true sentinel chains map to specific statuses.
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, _ = respond(t, fmtWrap(model.ErrIllegalTransition))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("transition failed"), err)
}

func TestRespondErrorFieldErrors(t *testing.T) {
	w, resp := respond(t, model.FieldErrors{"email": "valid email is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "valid email is required", resp.Fields["email"])
}

func TestRespondErrorAppError(t *testing.T) {
	w, resp := respond(t, apperror.Unauthorized("you must be logged in to book a service", "/intake/abc"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/intake/abc", resp.RedirectTo)

	w, resp = respond(t, apperror.Validation("please correct the highlighted fields", map[string]string{"date": "preferred date is invalid"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "preferred date is invalid", resp.Fields["date"])
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	_, resp := respond(t, errors.New("pq: connection refused"))
	assert.NotContains(t, resp.Message, "pq:")
}
