package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates the raw payload and persists it as a new submission.
	// A *ValidationError is returned for rejected payloads, in which case
	// nothing is stored. Store failures wrap repository.ErrStoreUnavailable.
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error)
}
