package controller

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/fieldecon/internal/domain/dto"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
)

func (c *Controller) GetCaseTotals(ctx echo.Context) error {
	id, err := caseID(ctx)
	if err != nil {
		return err
	}

	p, err := c.casePresentation(ctx, id)
	if err != nil {
		return err
	}

	totals, err := c.economics.GetTotals(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, p.Totals(totals))
}

func (c *Controller) RecalculateCase(ctx echo.Context) error {
	id, err := caseID(ctx)
	if err != nil {
		return err
	}

	p, err := c.casePresentation(ctx, id)
	if err != nil {
		return err
	}

	totals, err := c.economics.Recalculate(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, p.Totals(totals))
}

func (c *Controller) GetCaseCashFlow(ctx echo.Context) error {
	id, err := caseID(ctx)
	if err != nil {
		return err
	}

	p, err := c.casePresentation(ctx, id)
	if err != nil {
		return err
	}

	cashFlow, err := c.economics.CashFlow(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, p.Series(cashFlow))
}

func (c *Controller) GetCaseBreakdown(ctx echo.Context) error {
	id, err := caseID(ctx)
	if err != nil {
		return err
	}

	p, err := c.casePresentation(ctx, id)
	if err != nil {
		return err
	}

	breakdown, err := c.economics.Breakdown(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, p.Breakdown(breakdown))
}

// ImportCase stores the body snapshot under the path id and returns its
// recalculated totals.
func (c *Controller) ImportCase(ctx echo.Context) error {
	id, err := caseID(ctx)
	if err != nil {
		return err
	}

	var req dto.CaseSnapshotDto
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	if req.ID != "" && req.ID != id.String() {
		return fmt.Errorf("%w: body id %s does not match path id %s", constants.ErrBadRequest, req.ID, id)
	}
	req.ID = id.String()

	snapshot, err := req.ToDomain()
	if err != nil {
		return err
	}

	p, err := presentation(ctx, snapshot.Project)
	if err != nil {
		return err
	}

	totals, err := c.economics.ImportCase(ctx.Request().Context(), snapshot)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, p.Totals(totals))
}
