package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"

	"github.com/ougirez/fieldecon/internal/pkg/constants"
)

const (
	tableProjects   = "projects"
	tableCases      = "cases"
	tableAssets     = "assets"
	tableProfiles   = "profiles"
	tableCaseTotals = "case_totals"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel builder with postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func marshalValues(values []float64) ([]byte, error) {
	if values == nil {
		values = []float64{}
	}
	return sonic.Marshal(values)
}

func unmarshalValues(data []byte) ([]float64, error) {
	values := []float64{}
	if len(data) == 0 {
		return values, nil
	}
	if err := sonic.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
