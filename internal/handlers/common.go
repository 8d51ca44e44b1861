// internal/handlers/common.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mobileshop/backend/internal/services"
	"github.com/mobileshop/backend/internal/utils"
)

// respondServiceError maps service error kinds onto HTTP statuses. Unknown
// errors are logged and hidden behind a generic 500 body.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidOperation):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		utils.InternalErrorResponse(c)
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// requireUserID reads the authenticated user id set by the auth middleware.
func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return 0, false
	}
	return userID, true
}
