package services

import (
	"context"

	"github.com/precept-hq/contact-api/internal/models"
)

// ContactSubmitter is the contract the contact handler depends on.
type ContactSubmitter interface {
	Submit(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactResponse, error)
}
