package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/pkg/logger"
	"github.com/ougirez/fieldecon/internal/pkg/store/xpgx"
)

var totalColumns = []string{"case_id", "name", "start_year", "year_values", "calculated_at"}

type totalRecord struct {
	CaseID       uuid.UUID `db:"case_id"`
	Name         string    `db:"name"`
	StartYear    int       `db:"start_year"`
	YearValues   []byte    `db:"year_values"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func upsertTotalsQuery(totals *domain.CaseTotals) (sq.InsertBuilder, error) {
	query := builder().Insert(tableCaseTotals).Columns(totalColumns...)

	refs := totals.Refs()
	for _, name := range domain.TotalNames {
		ts := refs[name]
		valuesJSON, err := marshalValues(ts.Values)
		if err != nil {
			return query, fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		query = query.Values(totals.CaseID, string(name), ts.StartYear, valuesJSON, totals.CalculatedAt)
	}

	query = query.Suffix(`
on conflict (case_id, name)
do update
set
	start_year = excluded.start_year,
	year_values = excluded.year_values,
	calculated_at = excluded.calculated_at`)

	return query, nil
}

// SaveCaseTotals overwrites every stored total of the case.
func (s *store) SaveCaseTotals(ctx context.Context, totals *domain.CaseTotals) error {
	query, err := upsertTotalsQuery(totals)
	if err != nil {
		return err
	}

	if _, err = xpgx.Execx(ctx, s.pool, query); err != nil {
		logger.Error(ctx, err.Error())
		return fmt.Errorf("upsertTotals: %w", err)
	}
	return nil
}

func selectTotalsQuery(caseID uuid.UUID) sq.SelectBuilder {
	return builder().Select(totalColumns...).
		From(tableCaseTotals).
		Where(sq.Eq{"case_id": caseID})
}

func (s *store) GetCaseTotals(ctx context.Context, caseID uuid.UUID) (*domain.CaseTotals, error) {
	records, err := xpgx.Selectx[totalRecord](ctx, s.pool, selectTotalsQuery(caseID))
	if err != nil {
		return nil, fmt.Errorf("list totals: %w", err)
	}
	if len(records) == 0 {
		return nil, constants.ErrDBNotFound
	}
	return totalsFromRecords(caseID, records)
}

func totalsFromRecords(caseID uuid.UUID, records []totalRecord) (*domain.CaseTotals, error) {
	totals := &domain.CaseTotals{CaseID: caseID}
	refs := totals.Refs()
	for _, name := range domain.TotalNames {
		*refs[name] = domain.TimeSeries{Values: []float64{}}
	}

	for _, rec := range records {
		ref, ok := refs[domain.TotalName(rec.Name)]
		if !ok {
			continue
		}
		values, err := unmarshalValues(rec.YearValues)
		if err != nil {
			return nil, fmt.Errorf("total %s: %w", rec.Name, err)
		}
		*ref = domain.TimeSeries{StartYear: rec.StartYear, Values: values}
		if rec.CalculatedAt.After(totals.CalculatedAt) {
			totals.CalculatedAt = rec.CalculatedAt
		}
	}
	return totals, nil
}
