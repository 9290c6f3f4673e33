package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ougirez/fieldecon/internal/domain/dto"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
)

func (c *Controller) RefreshProjectPrices(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return constants.ErrInvalidProjectID
	}

	project, err := c.prices.RefreshProjectPrices(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.NewProjectDto(*project))
}
