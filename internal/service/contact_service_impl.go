package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit normalizes the payload, stamps status NEW and the portfolio form
// type, and hands the record to the repository. Failed writes are not retried.
func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
	sub, err := ValidateSubmission(in)
	if err != nil {
		return nil, err
	}

	sub.Status = model.StatusNew
	sub.FormType = model.FormTypePortfolioContact
	if err := s.repo.Create(ctx, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
