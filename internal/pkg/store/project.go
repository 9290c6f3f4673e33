package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/pkg/store/xpgx"
)

var projectColumns = []string{
	"id", "name", "oil_price_usd", "gas_price_local", "exchange_rate_usd_to_local", "currency", "created_at", "updated_at",
}

// UpdateProjectPricesOpts holds the price scalars to change. Nil fields are left as is.
type UpdateProjectPricesOpts struct {
	OilPriceUSD            *float64
	GasPriceLocal          *float64
	ExchangeRateUSDToLocal *float64
}

func (o UpdateProjectPricesOpts) empty() bool {
	return o.OilPriceUSD == nil && o.GasPriceLocal == nil && o.ExchangeRateUSDToLocal == nil
}

func selectProjectQuery(projectID uuid.UUID) sq.SelectBuilder {
	return builder().Select(projectColumns...).
		From(tableProjects).
		Where(sq.Eq{"id": projectID})
}

func (s *store) GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	project, err := xpgx.Getx[domain.Project](ctx, s.pool, selectProjectQuery(projectID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &project, nil
}

func selectCaseProjectQuery(caseID uuid.UUID) sq.SelectBuilder {
	columns := make([]string, 0, len(projectColumns))
	for _, c := range projectColumns {
		columns = append(columns, "p."+c)
	}
	return builder().Select(columns...).
		From(tableProjects + " p").
		Join(tableCases + " c on c.project_id = p.id").
		Where(sq.Eq{"c.id": caseID})
}

// GetCaseProject returns the project a case belongs to.
func (s *store) GetCaseProject(ctx context.Context, caseID uuid.UUID) (*domain.Project, error) {
	project, err := xpgx.Getx[domain.Project](ctx, s.pool, selectCaseProjectQuery(caseID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &project, nil
}

func updateProjectPricesQuery(projectID uuid.UUID, opts UpdateProjectPricesOpts, now time.Time) sq.UpdateBuilder {
	query := builder().Update(tableProjects).
		Set("updated_at", now).
		Where(sq.Eq{"id": projectID})

	if opts.OilPriceUSD != nil {
		query = query.Set("oil_price_usd", *opts.OilPriceUSD)
	}
	if opts.GasPriceLocal != nil {
		query = query.Set("gas_price_local", *opts.GasPriceLocal)
	}
	if opts.ExchangeRateUSDToLocal != nil {
		query = query.Set("exchange_rate_usd_to_local", *opts.ExchangeRateUSDToLocal)
	}
	return query
}

func (s *store) UpdateProjectPrices(
	ctx context.Context,
	projectID uuid.UUID,
	opts UpdateProjectPricesOpts,
) (*domain.Project, error) {
	if opts.empty() {
		return nil, constants.ErrBadRequest
	}

	tag, err := xpgx.Execx(ctx, s.pool, updateProjectPricesQuery(projectID, opts, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("update project prices: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, constants.ErrDBNotFound
	}

	return s.GetProject(ctx, projectID)
}

func upsertProjectQuery(p domain.Project) sq.InsertBuilder {
	currency := p.Currency
	if currency == "" {
		currency = domain.CurrencyLocal
	}
	return builder().Insert(tableProjects).
		Columns("id", "name", "oil_price_usd", "gas_price_local", "exchange_rate_usd_to_local", "currency").
		Values(p.ID, p.Name, p.OilPriceUSD, p.GasPriceLocal, p.ExchangeRateUSDToLocal, string(currency)).
		Suffix(`
on conflict (id)
do update
set
	name = excluded.name,
	oil_price_usd = excluded.oil_price_usd,
	gas_price_local = excluded.gas_price_local,
	exchange_rate_usd_to_local = excluded.exchange_rate_usd_to_local,
	currency = excluded.currency,
	updated_at = now()`)
}
