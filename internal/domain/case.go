package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/fieldecon/internal/pkg/series"
)

type Year = series.Year
type TimeSeries = series.TimeSeries[float64]
type Override = series.Override[float64]
type Profile = series.Profile[float64]

type Currency string

const (
	CurrencyLocal Currency = "Local"
	CurrencyUSD   Currency = "USD"
)

func (c Currency) Valid() bool {
	return c == CurrencyLocal || c == CurrencyUSD
}

type Project struct {
	ID                     uuid.UUID `db:"id"`
	Name                   string    `db:"name"`
	OilPriceUSD            float64   `db:"oil_price_usd"`
	GasPriceLocal          float64   `db:"gas_price_local"`
	ExchangeRateUSDToLocal float64   `db:"exchange_rate_usd_to_local"`
	Currency               Currency  `db:"currency"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

// Case holds the case-owned profiles and the links to its asset entities.
type Case struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string

	SubstructureLink     uuid.UUID
	SurfLink             uuid.UUID
	TopsideLink          uuid.UUID
	TransportLink        uuid.UUID
	WellProjectLink      uuid.UUID
	ExplorationLink      uuid.UUID
	DrainageStrategyLink uuid.UUID

	TotalFeasibilityAndConceptStudies Profile
	TotalFEEDStudies                  Profile
	TotalOtherStudies                 Profile

	HistoricCost                     Profile
	WellInterventionCost             Profile
	OffshoreFacilitiesOperationsCost Profile
	OnshoreRelatedOPEX               Profile
	AdditionalOPEX                   Profile

	CessationWellsCost              Profile
	CessationOffshoreFacilitiesCost Profile
	CessationOnshoreFacilitiesCost  Profile
}

func (c *Case) ProfileRefs() map[ProfileName]*Profile {
	return map[ProfileName]*Profile{
		ProfileTotalFeasibilityAndConceptStudies: &c.TotalFeasibilityAndConceptStudies,
		ProfileTotalFEEDStudies:                  &c.TotalFEEDStudies,
		ProfileTotalOtherStudies:                 &c.TotalOtherStudies,
		ProfileHistoricCost:                      &c.HistoricCost,
		ProfileWellInterventionCost:              &c.WellInterventionCost,
		ProfileOffshoreFacilitiesOperationsCost:  &c.OffshoreFacilitiesOperationsCost,
		ProfileOnshoreRelatedOPEX:                &c.OnshoreRelatedOPEX,
		ProfileAdditionalOPEX:                    &c.AdditionalOPEX,
		ProfileCessationWellsCost:                &c.CessationWellsCost,
		ProfileCessationOffshoreFacilitiesCost:   &c.CessationOffshoreFacilitiesCost,
		ProfileCessationOnshoreFacilitiesCost:    &c.CessationOnshoreFacilitiesCost,
	}
}

// Facility is any of substructure, surf, topside and transport: each owns a
// single overridable cost profile.
type Facility struct {
	ID          uuid.UUID
	Kind        AssetKind
	CostProfile Profile
}

func (f *Facility) ProfileRefs() map[ProfileName]*Profile {
	return map[ProfileName]*Profile{ProfileCost: &f.CostProfile}
}

type WellProject struct {
	ID                uuid.UUID
	OilProducerCost   Profile
	GasProducerCost   Profile
	WaterInjectorCost Profile
	GasInjectorCost   Profile
}

func (w *WellProject) ProfileRefs() map[ProfileName]*Profile {
	return map[ProfileName]*Profile{
		ProfileOilProducerCost:   &w.OilProducerCost,
		ProfileGasProducerCost:   &w.GasProducerCost,
		ProfileWaterInjectorCost: &w.WaterInjectorCost,
		ProfileGasInjectorCost:   &w.GasInjectorCost,
	}
}

type Exploration struct {
	ID                              uuid.UUID
	GAndGAdminCost                  Profile
	SeismicAcquisitionAndProcessing Profile
	CountryOfficeCost               Profile
	ExplorationWellCost             Profile
	AppraisalWellCost               Profile
	SidetrackCost                   Profile
}

func (e *Exploration) ProfileRefs() map[ProfileName]*Profile {
	return map[ProfileName]*Profile{
		ProfileGAndGAdminCost:                  &e.GAndGAdminCost,
		ProfileSeismicAcquisitionAndProcessing: &e.SeismicAcquisitionAndProcessing,
		ProfileCountryOfficeCost:               &e.CountryOfficeCost,
		ProfileExplorationWellCost:             &e.ExplorationWellCost,
		ProfileAppraisalWellCost:               &e.AppraisalWellCost,
		ProfileSidetrackCost:                   &e.SidetrackCost,
	}
}

// DrainageStrategy volumes: oil in million Sm3, gas in billion Sm3.
type DrainageStrategy struct {
	ID                             uuid.UUID
	ProductionProfileOil           Profile
	AdditionalProductionProfileOil Profile
	ProductionProfileGas           Profile
	AdditionalProductionProfileGas Profile
}

func (d *DrainageStrategy) ProfileRefs() map[ProfileName]*Profile {
	return map[ProfileName]*Profile{
		ProfileProductionOil:           &d.ProductionProfileOil,
		ProfileAdditionalProductionOil: &d.AdditionalProductionProfileOil,
		ProfileProductionGas:           &d.ProductionProfileGas,
		ProfileAdditionalProductionGas: &d.AdditionalProductionProfileGas,
	}
}

// CaseSnapshot is everything the economics engine reads for one case. Linked
// entities that do not exist are nil. The engine never loads anything itself.
type CaseSnapshot struct {
	Case    Case
	Project Project

	Substructure     *Facility
	Surf             *Facility
	Topside          *Facility
	Transport        *Facility
	WellProject      *WellProject
	Exploration      *Exploration
	DrainageStrategy *DrainageStrategy
}

// Links returns the non-empty asset links of the case.
func (c *Case) Links() map[AssetKind]uuid.UUID {
	links := make(map[AssetKind]uuid.UUID, 7)
	for kind, id := range map[AssetKind]uuid.UUID{
		AssetSubstructure:     c.SubstructureLink,
		AssetSurf:             c.SurfLink,
		AssetTopside:          c.TopsideLink,
		AssetTransport:        c.TransportLink,
		AssetWellProject:      c.WellProjectLink,
		AssetExploration:      c.ExplorationLink,
		AssetDrainageStrategy: c.DrainageStrategyLink,
	} {
		if id != uuid.Nil {
			links[kind] = id
		}
	}
	return links
}

// AttachAsset creates an empty entity of the given kind on the snapshot.
func (s *CaseSnapshot) AttachAsset(kind AssetKind, id uuid.UUID) bool {
	switch kind {
	case AssetSubstructure:
		s.Substructure = &Facility{ID: id, Kind: kind}
	case AssetSurf:
		s.Surf = &Facility{ID: id, Kind: kind}
	case AssetTopside:
		s.Topside = &Facility{ID: id, Kind: kind}
	case AssetTransport:
		s.Transport = &Facility{ID: id, Kind: kind}
	case AssetWellProject:
		s.WellProject = &WellProject{ID: id}
	case AssetExploration:
		s.Exploration = &Exploration{ID: id}
	case AssetDrainageStrategy:
		s.DrainageStrategy = &DrainageStrategy{ID: id}
	default:
		return false
	}
	return true
}

// ProfileOwner is an entity that stores profiles under its id. Kind is empty
// for the case itself.
type ProfileOwner struct {
	ID   uuid.UUID
	Kind AssetKind
	Refs map[ProfileName]*Profile
}

// Owners lists the case and every present asset.
func (s *CaseSnapshot) Owners() []ProfileOwner {
	owners := []ProfileOwner{{ID: s.Case.ID, Refs: s.Case.ProfileRefs()}}
	for _, f := range []*Facility{s.Substructure, s.Surf, s.Topside, s.Transport} {
		if f != nil {
			owners = append(owners, ProfileOwner{ID: f.ID, Kind: f.Kind, Refs: f.ProfileRefs()})
		}
	}
	if s.WellProject != nil {
		owners = append(owners, ProfileOwner{ID: s.WellProject.ID, Kind: AssetWellProject, Refs: s.WellProject.ProfileRefs()})
	}
	if s.Exploration != nil {
		owners = append(owners, ProfileOwner{ID: s.Exploration.ID, Kind: AssetExploration, Refs: s.Exploration.ProfileRefs()})
	}
	if s.DrainageStrategy != nil {
		owners = append(owners, ProfileOwner{ID: s.DrainageStrategy.ID, Kind: AssetDrainageStrategy, Refs: s.DrainageStrategy.ProfileRefs()})
	}
	return owners
}
