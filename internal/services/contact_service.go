package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/precept-hq/contact-api/config"
	"github.com/precept-hq/contact-api/internal/mailer"
	"github.com/precept-hq/contact-api/internal/models"
	apperrors "github.com/precept-hq/contact-api/pkg/errors"
	"github.com/precept-hq/contact-api/pkg/logger"
	"github.com/precept-hq/contact-api/pkg/metrics"
)

// User-facing response messages. Rejection reasons are specific for honest
// mistakes and deliberately vague for the honeypot; dispatch failures never
// leak relay details to the caller.
const (
	msgSuccess       = "Thank you for your message! We'll get back to you soon."
	msgHoneypot      = "Invalid submission"
	msgMissingFields = "Please fill in all required fields"
	msgInvalidEmail  = "Please enter a valid email address"
	msgDispatchError = "Sorry, there was an error sending your message. Please try again later."
)

// ContactService runs a submission through the pipeline:
// honeypot check, field validation, composition, dispatch.
// A submission is either dispatched exactly once or rejected with no send.
type ContactService struct {
	composer   *mailer.Composer
	dispatcher mailer.Dispatcher
}

// NewContactService creates a new contact service instance
func NewContactService(cfg *config.Config, dispatcher mailer.Dispatcher) *ContactService {
	return &ContactService{
		composer:   mailer.NewComposer(cfg.Mail),
		dispatcher: dispatcher,
	}
}

func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactResponse, error) {
	// Honeypot runs before field validation so bot traffic is rejected
	// cheaply and without a useful error message.
	if req.IsBot() {
		metrics.ContactSubmissions.WithLabelValues("honeypot").Inc()
		logger.Debug("honeypot triggered", zap.String("client_ip", meta.ClientIP))
		return &models.ContactResponse{
			Success: false,
			Message: msgHoneypot,
		}, apperrors.InvalidInputError("website", "honeypot filled")
	}

	if err := req.Validate(); err != nil {
		if errors.Is(err, models.ErrInvalidEmail) {
			metrics.ContactSubmissions.WithLabelValues("invalid_email").Inc()
			return &models.ContactResponse{
				Success: false,
				Message: msgInvalidEmail,
			}, apperrors.InvalidInputError("email", "malformed address")
		}
		metrics.ContactSubmissions.WithLabelValues("missing_fields").Inc()
		return &models.ContactResponse{
			Success: false,
			Message: msgMissingFields,
		}, apperrors.InvalidInputError("form", "required fields missing")
	}

	msg, err := s.composer.Compose(req.Submission(meta))
	if err != nil {
		logger.Error("failed to compose contact email", zap.Error(err))
		return &models.ContactResponse{
			Success: false,
			Message: msgDispatchError,
		}, apperrors.InternalError("compose contact email")
	}

	start := time.Now()
	if err := s.dispatcher.Send(ctx, msg); err != nil {
		metrics.ContactSubmissions.WithLabelValues("dispatch_error").Inc()
		metrics.MailDispatchTotal.WithLabelValues("error").Inc()
		metrics.MailDispatchDuration.WithLabelValues("error").Observe(metrics.MeasureDuration(start))
		// Operator-facing detail stays in the log; the caller only sees
		// a generic failure message.
		logger.Error("mail dispatch failed",
			zap.Error(err),
			zap.String("client_ip", meta.ClientIP),
		)
		return &models.ContactResponse{
			Success: false,
			Message: msgDispatchError,
		}, apperrors.DispatchError(err)
	}

	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	metrics.MailDispatchTotal.WithLabelValues("success").Inc()
	metrics.MailDispatchDuration.WithLabelValues("success").Observe(metrics.MeasureDuration(start))
	logger.Info("contact form relayed",
		zap.String("client_ip", meta.ClientIP),
		zap.Float64("dispatch_seconds", metrics.MeasureDuration(start)),
	)

	return &models.ContactResponse{
		Success: true,
		Message: msgSuccess,
	}, nil
}
