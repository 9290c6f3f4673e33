package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
	GetCaseProject(ctx context.Context, caseID uuid.UUID) (*domain.Project, error)
	UpdateProjectPrices(ctx context.Context, projectID uuid.UUID, opts UpdateProjectPricesOpts) (*domain.Project, error)

	GetCaseSnapshot(ctx context.Context, caseID uuid.UUID) (*domain.CaseSnapshot, error)
	SaveCaseSnapshot(ctx context.Context, snapshot *domain.CaseSnapshot) error

	GetCaseTotals(ctx context.Context, caseID uuid.UUID) (*domain.CaseTotals, error)
	SaveCaseTotals(ctx context.Context, totals *domain.CaseTotals) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
