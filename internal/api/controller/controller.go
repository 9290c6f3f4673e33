package controller

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/domain/dto"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/service/economics"
)

type EconomicsService interface {
	GetTotals(ctx context.Context, caseID uuid.UUID) (*domain.CaseTotals, error)
	Recalculate(ctx context.Context, caseID uuid.UUID) (*domain.CaseTotals, error)
	CashFlow(ctx context.Context, caseID uuid.UUID) (domain.TimeSeries, error)
	Breakdown(ctx context.Context, caseID uuid.UUID) (map[economics.Category][]economics.SlotValue, error)
	ImportCase(ctx context.Context, snapshot *domain.CaseSnapshot) (*domain.CaseTotals, error)
}

type ProjectStore interface {
	GetCaseProject(ctx context.Context, caseID uuid.UUID) (*domain.Project, error)
}

type PricesService interface {
	RefreshProjectPrices(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
}

type Controller struct {
	economics EconomicsService
	projects  ProjectStore
	prices    PricesService
}

func NewController(economics EconomicsService, projects ProjectStore, prices PricesService) *Controller {
	return &Controller{
		economics: economics,
		projects:  projects,
		prices:    prices,
	}
}

func caseID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, constants.ErrInvalidCaseID
	}
	return id, nil
}

func presentation(ctx echo.Context, project domain.Project) (dto.Presentation, error) {
	return dto.NewPresentation(
		project,
		ctx.QueryParam(constants.QueryParamCurrency),
		ctx.QueryParam(constants.QueryParamPrecision),
	)
}

// casePresentation reads the presentation settings for a stored case.
func (c *Controller) casePresentation(ctx echo.Context, id uuid.UUID) (dto.Presentation, error) {
	project, err := c.projects.GetCaseProject(ctx.Request().Context(), id)
	if err != nil {
		return dto.Presentation{}, err
	}
	return presentation(ctx, *project)
}
