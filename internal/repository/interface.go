package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository is the persistence gateway for contact submissions.
type ContactRepository interface {
	// Create durably stores s and fills s.ID and s.CreatedAt. Either the
	// whole record is written or nothing is; errors wrap ErrStoreUnavailable.
	Create(ctx context.Context, s *model.ContactSubmission) error
}
