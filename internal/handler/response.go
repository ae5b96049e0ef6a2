package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekkositon/booking-api/internal/model"
	"github.com/nekkositon/booking-api/pkg/apperror"
)

type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	// RedirectTo tells an unauthenticated caller where to resume after login.
	RedirectTo string `json:"redirect_to,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps domain and application errors onto HTTP statuses.
// Validation stays field-scoped, conflicts mark caller misuse, anything
// unrecognized is treated as a retryable store failure.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		resp := &Response{
			Status:     "error",
			Message:    appErr.Message,
			Fields:     appErr.Fields,
			RedirectTo: appErr.RedirectTo,
		}
		c.JSON(statusForCode(appErr.Code), resp)
		return
	}

	var fieldErrs model.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, &Response{
			Status:  "error",
			Message: "validation failed",
			Fields:  fieldErrs,
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrBookingNotFound),
		errors.Is(err, model.ErrServiceNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrAdminRequestNotFound),
		errors.Is(err, model.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case errors.Is(err, model.ErrIllegalTransition),
		errors.Is(err, model.ErrPaymentProofRequired),
		errors.Is(err, model.ErrRequestAlreadyFinal),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrServiceNotBookable):
		c.JSON(http.StatusConflict, NewErrorResponse(err.Error()))
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error()))
	case errors.Is(err, model.ErrNotBookingOwner):
		c.JSON(http.StatusForbidden, NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse("something went wrong, please try again"))
	}
}

func statusForCode(code apperror.Code) int {
	switch code {
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperror.CodeForbidden:
		return http.StatusForbidden
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
