package domain

import (
	"time"

	"github.com/google/uuid"
)

type TotalName string

const (
	TotalStudyCost            TotalName = "study_cost"
	TotalOpexCost             TotalName = "opex_cost"
	TotalCessationCost        TotalName = "cessation_cost"
	TotalOffshoreFacilityCost TotalName = "offshore_facility_cost"
	TotalDevelopmentCost      TotalName = "development_cost"
	TotalExplorationCost      TotalName = "exploration_cost"
	TotalCost                 TotalName = "total_cost"
	TotalIncome               TotalName = "total_income"
	TotalCashFlow             TotalName = "cash_flow"
)

// TotalNames lists every persisted total in a stable order.
var TotalNames = []TotalName{
	TotalStudyCost,
	TotalOpexCost,
	TotalCessationCost,
	TotalOffshoreFacilityCost,
	TotalDevelopmentCost,
	TotalExplorationCost,
	TotalCost,
	TotalIncome,
	TotalCashFlow,
}

// CaseTotals is the engine output for one case. Cost series are in the unit
// the profiles were entered in (million local currency); income is already
// divided down to the same reporting scale.
type CaseTotals struct {
	CaseID       uuid.UUID `json:"case_id"`
	CalculatedAt time.Time `json:"calculated_at"`

	StudyCost            TimeSeries `json:"study_cost"`
	OpexCost             TimeSeries `json:"opex_cost"`
	CessationCost        TimeSeries `json:"cessation_cost"`
	OffshoreFacilityCost TimeSeries `json:"offshore_facility_cost"`
	DevelopmentCost      TimeSeries `json:"development_cost"`
	ExplorationCost      TimeSeries `json:"exploration_cost"`

	TotalCost   TimeSeries `json:"total_cost"`
	TotalIncome TimeSeries `json:"total_income"`
	CashFlow    TimeSeries `json:"cash_flow"`
}

func (t *CaseTotals) Refs() map[TotalName]*TimeSeries {
	return map[TotalName]*TimeSeries{
		TotalStudyCost:            &t.StudyCost,
		TotalOpexCost:             &t.OpexCost,
		TotalCessationCost:        &t.CessationCost,
		TotalOffshoreFacilityCost: &t.OffshoreFacilityCost,
		TotalDevelopmentCost:      &t.DevelopmentCost,
		TotalExplorationCost:      &t.ExplorationCost,
		TotalCost:                 &t.TotalCost,
		TotalIncome:               &t.TotalIncome,
		TotalCashFlow:             &t.CashFlow,
	}
}
