package domain

import (
	"sort"

	"github.com/google/uuid"
)

type ProfileName string

const (
	ProfileTotalFeasibilityAndConceptStudies ProfileName = "total_feasibility_and_concept_studies"
	ProfileTotalFEEDStudies                  ProfileName = "total_feed_studies"
	ProfileTotalOtherStudies                 ProfileName = "total_other_studies"
	ProfileHistoricCost                      ProfileName = "historic_cost"
	ProfileWellInterventionCost              ProfileName = "well_intervention_cost"
	ProfileOffshoreFacilitiesOperationsCost  ProfileName = "offshore_facilities_operations_cost"
	ProfileOnshoreRelatedOPEX                ProfileName = "onshore_related_opex"
	ProfileAdditionalOPEX                    ProfileName = "additional_opex"
	ProfileCessationWellsCost                ProfileName = "cessation_wells_cost"
	ProfileCessationOffshoreFacilitiesCost   ProfileName = "cessation_offshore_facilities_cost"
	ProfileCessationOnshoreFacilitiesCost    ProfileName = "cessation_onshore_facilities_cost"

	ProfileCost ProfileName = "cost_profile"

	ProfileOilProducerCost   ProfileName = "oil_producer_cost"
	ProfileGasProducerCost   ProfileName = "gas_producer_cost"
	ProfileWaterInjectorCost ProfileName = "water_injector_cost"
	ProfileGasInjectorCost   ProfileName = "gas_injector_cost"

	ProfileGAndGAdminCost                  ProfileName = "g_and_g_admin_cost"
	ProfileSeismicAcquisitionAndProcessing ProfileName = "seismic_acquisition_and_processing"
	ProfileCountryOfficeCost               ProfileName = "country_office_cost"
	ProfileExplorationWellCost             ProfileName = "exploration_well_cost"
	ProfileAppraisalWellCost               ProfileName = "appraisal_well_cost"
	ProfileSidetrackCost                   ProfileName = "sidetrack_cost"

	ProfileProductionOil           ProfileName = "production_profile_oil"
	ProfileAdditionalProductionOil ProfileName = "additional_production_profile_oil"
	ProfileProductionGas           ProfileName = "production_profile_gas"
	ProfileAdditionalProductionGas ProfileName = "additional_production_profile_gas"
)

type AssetKind string

const (
	AssetSubstructure     AssetKind = "substructure"
	AssetSurf             AssetKind = "surf"
	AssetTopside          AssetKind = "topside"
	AssetTransport        AssetKind = "transport"
	AssetWellProject      AssetKind = "well_project"
	AssetExploration      AssetKind = "exploration"
	AssetDrainageStrategy AssetKind = "drainage_strategy"
)

// ProfileRow is one stored profile variant: the base series or its override.
type ProfileRow struct {
	OwnerID        uuid.UUID
	Name           ProfileName
	IsOverride     bool
	OverrideActive bool
	StartYear      Year
	Values         []float64
}

// Apply stores the row into the matching slot of refs. Unknown names are
// reported back so the caller can log them.
func (r ProfileRow) Apply(refs map[ProfileName]*Profile) bool {
	ref, ok := refs[r.Name]
	if !ok {
		return false
	}

	ts := TimeSeries{StartYear: r.StartYear, Values: r.Values}
	if ts.Values == nil {
		ts.Values = []float64{}
	}

	if r.IsOverride {
		ref.Override = &Override{TimeSeries: ts, Active: r.OverrideActive}
	} else {
		ref.Base = &ts
	}
	return true
}

// Rows flattens refs into stored rows, base before override, ordered by name.
func Rows(ownerID uuid.UUID, refs map[ProfileName]*Profile) []ProfileRow {
	names := make([]ProfileName, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	var rows []ProfileRow
	for _, name := range names {
		p := refs[name]
		if p.Base != nil {
			rows = append(rows, ProfileRow{
				OwnerID:   ownerID,
				Name:      name,
				StartYear: p.Base.StartYear,
				Values:    p.Base.Values,
			})
		}
		if p.Override != nil {
			rows = append(rows, ProfileRow{
				OwnerID:        ownerID,
				Name:           name,
				IsOverride:     true,
				OverrideActive: p.Override.Active,
				StartYear:      p.Override.StartYear,
				Values:         p.Override.Values,
			})
		}
	}
	return rows
}
