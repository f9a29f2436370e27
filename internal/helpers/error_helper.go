package helpers

import (
	"errors"
	"net/http"

	"github.com/boxoffice/boxoffice/internal/inventory"
	"github.com/boxoffice/boxoffice/internal/log"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}

// RespondWithEngineError maps inventory errors onto HTTP statuses. Failures
// caused by the request itself are 400s; storage failures are logged and
// reported as 500s without their details.
func RespondWithEngineError(c *gin.Context, err error) {
	var (
		validationErr *inventory.ValidationError
		notFoundErr   *inventory.NotFoundError
		allocationErr *inventory.AllocationError
		capacityErr   *inventory.CapacityError
	)

	switch {
	case errors.Is(err, inventory.ErrEventNotFound), errors.Is(err, inventory.ErrTicketNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrAlreadyCheckedIn), errors.Is(err, inventory.ErrTicketCancelled):
		RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, inventory.ErrEventClosed),
		errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &allocationErr),
		errors.As(err, &capacityErr):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.FromContext(c.Request.Context()).WithError(err).Error("Request failed")
		RespondWithError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
