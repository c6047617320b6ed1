package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Fuku-x/connect-app/pkg/errors"
	"github.com/Fuku-x/connect-app/pkg/logger"
)

// respondError renders service-layer errors. AppErrors keep their status and
// field detail; anything else is a 500 with the detail kept server-side.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		body := gin.H{"error": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		c.JSON(appErr.Code, body)
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
