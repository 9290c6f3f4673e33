package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/fieldecon/internal/domain/dto"
	"github.com/ougirez/fieldecon/internal/service/economics"
)

type calculateResponse struct {
	Totals    dto.TotalsResponse     `json:"totals"`
	Breakdown []dto.CategoryResponse `json:"breakdown,omitempty"`
}

// Calculate runs the engine on the body snapshot without touching storage.
// ?breakdown=true adds the resolved sub-profiles of every category.
func (c *Controller) Calculate(ctx echo.Context) error {
	var req dto.CaseSnapshotDto
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	snapshot, err := req.ToDomain()
	if err != nil {
		return err
	}

	p, err := presentation(ctx, snapshot.Project)
	if err != nil {
		return err
	}

	totals := economics.Calculate(snapshot)
	resp := calculateResponse{Totals: p.Totals(&totals)}

	if ctx.QueryParam("breakdown") == "true" {
		b := make(map[economics.Category][]economics.SlotValue)
		for _, category := range economics.Categories() {
			b[category] = economics.Breakdown(snapshot, category)
		}
		resp.Breakdown = p.Breakdown(b)
	}

	return ctx.JSON(http.StatusOK, resp)
}
