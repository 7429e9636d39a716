package ports

import (
	"context"

	"github.com/bnema/helm-threads-cli/internal/domain"
)

type ThreadRepository interface {
	GetByID(ctx context.Context, id domain.ThreadID) (domain.Thread, error)
	List(ctx context.Context) ([]domain.Thread, error)
	Save(ctx context.Context, thread domain.Thread) error
}
