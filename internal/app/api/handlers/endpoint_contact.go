package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/fivedtech/mail-relay/internal/app/api/core/middleware/tracing"
	"github.com/fivedtech/mail-relay/internal/app/api/core/request"
	"github.com/fivedtech/mail-relay/internal/app/api/core/respond"
	"github.com/fivedtech/mail-relay/internal/app/api/models"
	"github.com/fivedtech/mail-relay/internal/config"
	"github.com/fivedtech/mail-relay/internal/domain"
)

type ContactEndpointService interface {
	Submit(ctx context.Context, submission domain.ContactSubmission) (*domain.SubmissionReceipt, error)
}

type ContactEndpoint struct {
	cfg     *config.Config
	contact ContactEndpointService
}

func NewContactEndpoint(cfg *config.Config, contact ContactEndpointService) ContactEndpoint {
	return ContactEndpoint{
		cfg:     cfg,
		contact: contact,
	}
}

func (e ContactEndpoint) GetName() string {
	return "ContactEndpoint"
}

func (e ContactEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("POST /send-email", e.handleSendEmailPost())
}

// handleSendEmailPost returns the http.HandlerFunc for the endpoint.
//
// @ID contact_handleSendEmailPost
// @Tags Contact
// @Summary Relay a contact form submission as email.
// @Description Exactly one email is sent per request. Failed sends are not retried.
// @Param request body models.ContactRequest true "The contact form data."
// @Accept json
// @Produce json
// @Success 200 {object} models.ContactResponse
// @Failure 400 {object} models.Error
// @Failure 403 {object} models.Error
// @Failure 500 {object} models.Error
// @Router /send-email [post]
func (e ContactEndpoint) handleSendEmailPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ContactRequest
		err := request.BodyJson(w, r, e.cfg.Web.MaxBodyBytes, &req)
		switch {
		case errors.Is(err, io.EOF):
			// an empty body is treated like a form without any values
		case err != nil:
			slog.Debug("failed to decode contact request",
				"requestId", tracing.RequestId(r.Context()),
				"error", err)
			respond.JSON(w, http.StatusBadRequest, models.NewError(models.MsgInvalidBody))
			return
		}

		// the send is never aborted half-way if the visitor closes the connection
		ctx := context.WithoutCancel(r.Context())

		receipt, err := e.contact.Submit(ctx, models.NewDomainContactSubmission(&req))
		if err != nil {
			code, body := ParseServiceError(err)
			if code >= http.StatusInternalServerError {
				slog.Warn("failed to relay contact request",
					"requestId", tracing.RequestId(r.Context()),
					"client", request.ClientIp(r, request.CheckPrivateProxy),
					"error", err)
			}
			respond.JSON(w, code, body)
			return
		}

		w.Header().Set(domain.HeaderSubmissionId, receipt.ID)
		respond.JSON(w, http.StatusOK, models.NewContactResponse())
	}
}
