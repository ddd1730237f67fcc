package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gridgames-server/pkg/models"
)

// ErrorResponse is the canonical error body: a human readable message plus
// an optional machine code in details.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a tagged engine error onto the HTTP response shape.
// Untagged errors are treated as internal and their details are not leaked.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	ge, ok := models.AsGameError(err)
	if !ok {
		logger.Error("unexpected error",
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
		return
	}

	if ge.Kind == models.KindInternal {
		logger.Error("internal error",
			"path", c.FullPath(),
			"code", ge.Code,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error", Details: ge.Code})
		return
	}

	c.JSON(statusForKind(ge.Kind), ErrorResponse{Message: ge.Message, Details: ge.Code})
}

// respondBindError maps request body parsing failures to 400 validation.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "invalid request body: " + err.Error(),
		Details: models.CodeInvalidBody,
	})
}
