package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/infrastructure/logger"
	"tripmind/internal/utils/platformerrors"
)

// ErrorResponse is the failure shape every endpoint shares.
type ErrorResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// HandleError writes the error shape with the status mapped from the
// platform error type. Unknown errors become a generic 500 with the
// fallback message so internals never leak.
func HandleError(c *gin.Context, err error, fallback string) {
	log := logger.GetLogger()

	platformErr := platformerrors.GetPlatformError(err)
	if platformErr == nil {
		log.Error().Err(err).Msg(fallback)
		c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Detail: fallback})
		return
	}

	platformerrors.LogError(log, platformErr)
	c.JSON(platformerrors.ErrorTypeToHTTPStatus(platformErr.Type), ErrorResponse{
		OK:     false,
		Detail: platformErr.Message,
	})
}

// HandleNewError writes a fresh error without an underlying cause.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, errorUUID string) {
	platformErr := platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, errorUUID)
	platformerrors.LogError(logger.GetLogger(), platformErr)
	c.JSON(platformerrors.ErrorTypeToHTTPStatus(errorType), ErrorResponse{OK: false, Detail: message})
}
