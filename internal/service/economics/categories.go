package economics

import (
	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/series"
)

type Category string

const (
	CategoryStudy            Category = "study"
	CategoryOpex             Category = "opex"
	CategoryCessation        Category = "cessation"
	CategoryOffshoreFacility Category = "offshore_facility"
	CategoryDevelopment      Category = "development"
	CategoryExploration      Category = "exploration"
)

// slot is one sub-profile of a category. get returns nil when the owning
// entity is missing from the snapshot.
type slot struct {
	name        domain.ProfileName
	overridable bool
	get         func(s *domain.CaseSnapshot) *domain.Profile
}

func (sl slot) resolve(s *domain.CaseSnapshot) domain.TimeSeries {
	p := sl.get(s)
	if p == nil {
		return series.Zero[float64]()
	}
	if sl.overridable {
		return p.Resolve()
	}
	return p.ResolveBase()
}

func caseSlot(name domain.ProfileName, overridable bool, field func(c *domain.Case) *domain.Profile) slot {
	return slot{name: name, overridable: overridable, get: func(s *domain.CaseSnapshot) *domain.Profile {
		return field(&s.Case)
	}}
}

func facilitySlot(kind domain.AssetKind, facility func(s *domain.CaseSnapshot) *domain.Facility) slot {
	name := domain.ProfileName(string(kind) + "_" + string(domain.ProfileCost))
	return slot{name: name, overridable: true, get: func(s *domain.CaseSnapshot) *domain.Profile {
		f := facility(s)
		if f == nil {
			return nil
		}
		return &f.CostProfile
	}}
}

func wellProjectSlot(name domain.ProfileName, field func(w *domain.WellProject) *domain.Profile) slot {
	return slot{name: name, overridable: true, get: func(s *domain.CaseSnapshot) *domain.Profile {
		if s.WellProject == nil {
			return nil
		}
		return field(s.WellProject)
	}}
}

func explorationSlot(name domain.ProfileName, overridable bool, field func(e *domain.Exploration) *domain.Profile) slot {
	return slot{name: name, overridable: overridable, get: func(s *domain.CaseSnapshot) *domain.Profile {
		if s.Exploration == nil {
			return nil
		}
		return field(s.Exploration)
	}}
}

// categories is the fixed cost grouping, in the order totals are merged.
var categories = []struct {
	category Category
	slots    []slot
}{
	{CategoryStudy, []slot{
		caseSlot(domain.ProfileTotalFeasibilityAndConceptStudies, true, func(c *domain.Case) *domain.Profile { return &c.TotalFeasibilityAndConceptStudies }),
		caseSlot(domain.ProfileTotalFEEDStudies, true, func(c *domain.Case) *domain.Profile { return &c.TotalFEEDStudies }),
		caseSlot(domain.ProfileTotalOtherStudies, false, func(c *domain.Case) *domain.Profile { return &c.TotalOtherStudies }),
	}},
	{CategoryOpex, []slot{
		caseSlot(domain.ProfileHistoricCost, false, func(c *domain.Case) *domain.Profile { return &c.HistoricCost }),
		caseSlot(domain.ProfileWellInterventionCost, true, func(c *domain.Case) *domain.Profile { return &c.WellInterventionCost }),
		caseSlot(domain.ProfileOffshoreFacilitiesOperationsCost, true, func(c *domain.Case) *domain.Profile { return &c.OffshoreFacilitiesOperationsCost }),
		caseSlot(domain.ProfileOnshoreRelatedOPEX, false, func(c *domain.Case) *domain.Profile { return &c.OnshoreRelatedOPEX }),
		caseSlot(domain.ProfileAdditionalOPEX, false, func(c *domain.Case) *domain.Profile { return &c.AdditionalOPEX }),
	}},
	{CategoryCessation, []slot{
		caseSlot(domain.ProfileCessationWellsCost, true, func(c *domain.Case) *domain.Profile { return &c.CessationWellsCost }),
		caseSlot(domain.ProfileCessationOffshoreFacilitiesCost, true, func(c *domain.Case) *domain.Profile { return &c.CessationOffshoreFacilitiesCost }),
		caseSlot(domain.ProfileCessationOnshoreFacilitiesCost, false, func(c *domain.Case) *domain.Profile { return &c.CessationOnshoreFacilitiesCost }),
	}},
	{CategoryOffshoreFacility, []slot{
		facilitySlot(domain.AssetSubstructure, func(s *domain.CaseSnapshot) *domain.Facility { return s.Substructure }),
		facilitySlot(domain.AssetSurf, func(s *domain.CaseSnapshot) *domain.Facility { return s.Surf }),
		facilitySlot(domain.AssetTopside, func(s *domain.CaseSnapshot) *domain.Facility { return s.Topside }),
		facilitySlot(domain.AssetTransport, func(s *domain.CaseSnapshot) *domain.Facility { return s.Transport }),
	}},
	{CategoryDevelopment, []slot{
		wellProjectSlot(domain.ProfileOilProducerCost, func(w *domain.WellProject) *domain.Profile { return &w.OilProducerCost }),
		wellProjectSlot(domain.ProfileGasProducerCost, func(w *domain.WellProject) *domain.Profile { return &w.GasProducerCost }),
		wellProjectSlot(domain.ProfileWaterInjectorCost, func(w *domain.WellProject) *domain.Profile { return &w.WaterInjectorCost }),
		wellProjectSlot(domain.ProfileGasInjectorCost, func(w *domain.WellProject) *domain.Profile { return &w.GasInjectorCost }),
	}},
	{CategoryExploration, []slot{
		explorationSlot(domain.ProfileGAndGAdminCost, true, func(e *domain.Exploration) *domain.Profile { return &e.GAndGAdminCost }),
		explorationSlot(domain.ProfileSeismicAcquisitionAndProcessing, false, func(e *domain.Exploration) *domain.Profile { return &e.SeismicAcquisitionAndProcessing }),
		explorationSlot(domain.ProfileCountryOfficeCost, false, func(e *domain.Exploration) *domain.Profile { return &e.CountryOfficeCost }),
		explorationSlot(domain.ProfileExplorationWellCost, false, func(e *domain.Exploration) *domain.Profile { return &e.ExplorationWellCost }),
		explorationSlot(domain.ProfileAppraisalWellCost, false, func(e *domain.Exploration) *domain.Profile { return &e.AppraisalWellCost }),
		explorationSlot(domain.ProfileSidetrackCost, false, func(e *domain.Exploration) *domain.Profile { return &e.SidetrackCost }),
	}},
}

// Categories returns the category names in merge order.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.category)
	}
	return out
}

// SlotValue is the resolved series of a single sub-profile.
type SlotValue struct {
	Name       domain.ProfileName
	Overridden bool
	Series     domain.TimeSeries
}

// Breakdown resolves every sub-profile of the category without merging.
func Breakdown(s *domain.CaseSnapshot, category Category) []SlotValue {
	for _, c := range categories {
		if c.category != category {
			continue
		}

		out := make([]SlotValue, 0, len(c.slots))
		for _, sl := range c.slots {
			p := sl.get(s)
			out = append(out, SlotValue{
				Name:       sl.name,
				Overridden: sl.overridable && p != nil && p.IsOverridden(),
				Series:     sl.resolve(s),
			})
		}
		return out
	}
	return nil
}

// CategoryCost resolves every sub-profile of the category and merges them.
// An unknown category yields the zero series.
func CategoryCost(s *domain.CaseSnapshot, category Category) domain.TimeSeries {
	for _, c := range categories {
		if c.category != category {
			continue
		}

		resolved := make([]domain.TimeSeries, 0, len(c.slots))
		for _, sl := range c.slots {
			resolved = append(resolved, sl.resolve(s))
		}
		return series.Merge(resolved...)
	}
	return series.Zero[float64]()
}

func StudyCost(s *domain.CaseSnapshot) domain.TimeSeries {
	return CategoryCost(s, CategoryStudy)
}

func OpexCost(s *domain.CaseSnapshot) domain.TimeSeries {
	return CategoryCost(s, CategoryOpex)
}

func CessationCost(s *domain.CaseSnapshot) domain.TimeSeries {
	return CategoryCost(s, CategoryCessation)
}

func OffshoreFacilityCost(s *domain.CaseSnapshot) domain.TimeSeries {
	return CategoryCost(s, CategoryOffshoreFacility)
}

func DevelopmentCost(s *domain.CaseSnapshot) domain.TimeSeries {
	return CategoryCost(s, CategoryDevelopment)
}

func ExplorationCost(s *domain.CaseSnapshot) domain.TimeSeries {
	return CategoryCost(s, CategoryExploration)
}
