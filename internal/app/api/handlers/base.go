package handlers

import (
	"errors"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/fivedtech/mail-relay/internal/app/api/core"
	"github.com/fivedtech/mail-relay/internal/app/api/models"
	"github.com/fivedtech/mail-relay/internal/domain"
)

type Handler interface {
	// GetName returns the name of the handler.
	GetName() string
	// RegisterRoutes registers the routes for the handler.
	RegisterRoutes(g *routegroup.Bundle)
}

// To compile the API documentation use the
// api_build_tool
// command that can be found in the $PROJECT_ROOT/cmd/api_build_tool directory.

// @title 5D Tech Mail Relay API
// @version 1.0
// @description The mail relay accepts contact form submissions from the 5D Tech website and forwards them
// @description as a single email to the sales team. The visitor's address is used as reply-to.

// @license.name MIT

// @contact.name 5D Tech
// @contact.url https://5dtech.netlify.app

// @BasePath /

func NewRestApi(handlers ...Handler) core.ApiEndpointSetupFunc {
	return func() core.GroupSetupFn {
		return func(group *routegroup.Bundle) {
			// Handler functions
			for _, h := range handlers {
				h.RegisterRoutes(group)
			}
		}
	}
}

func ParseServiceError(err error) (int, models.Error) {
	if err == nil {
		return http.StatusInternalServerError, models.NewError("unknown server error")
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, models.NewError(validationErr.Message, validationErr.Fields...)
	case errors.Is(err, domain.ErrInvalidData):
		return http.StatusBadRequest, models.NewError(err.Error())
	case errors.Is(err, domain.ErrTransport):
		return http.StatusInternalServerError, models.NewError(err.Error())
	}

	return http.StatusInternalServerError, models.NewError(err.Error())
}
