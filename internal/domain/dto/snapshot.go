package dto

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
)

type ProjectDto struct {
	ID                     string  `json:"id" yaml:"id" validate:"omitempty,uuid"`
	Name                   string  `json:"name" yaml:"name"`
	OilPriceUSD            float64 `json:"oil_price_usd" yaml:"oil_price_usd" validate:"gte=0"`
	GasPriceLocal          float64 `json:"gas_price_local" yaml:"gas_price_local" validate:"gte=0"`
	ExchangeRateUSDToLocal float64 `json:"exchange_rate_usd_to_local" yaml:"exchange_rate_usd_to_local" validate:"gte=0"`
	Currency               string  `json:"currency" yaml:"currency" validate:"omitempty,oneof=Local USD"`
}

type AssetDto struct {
	ID       string                                `json:"id" yaml:"id" validate:"omitempty,uuid"`
	Profiles map[domain.ProfileName]domain.Profile `json:"profiles" yaml:"profiles"`
}

// CaseSnapshotDto is the wire shape of a complete case: its project, its own
// profiles and every linked asset. Absent assets are simply left out.
type CaseSnapshotDto struct {
	ID       string                                `json:"id" yaml:"id" validate:"omitempty,uuid"`
	Name     string                                `json:"name" yaml:"name"`
	Project  ProjectDto                            `json:"project" yaml:"project"`
	Profiles map[domain.ProfileName]domain.Profile `json:"profiles" yaml:"profiles"`

	Substructure     *AssetDto `json:"substructure,omitempty" yaml:"substructure,omitempty"`
	Surf             *AssetDto `json:"surf,omitempty" yaml:"surf,omitempty"`
	Topside          *AssetDto `json:"topside,omitempty" yaml:"topside,omitempty"`
	Transport        *AssetDto `json:"transport,omitempty" yaml:"transport,omitempty"`
	WellProject      *AssetDto `json:"well_project,omitempty" yaml:"well_project,omitempty"`
	Exploration      *AssetDto `json:"exploration,omitempty" yaml:"exploration,omitempty"`
	DrainageStrategy *AssetDto `json:"drainage_strategy,omitempty" yaml:"drainage_strategy,omitempty"`
}

func parseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id %q", constants.ErrBadRequest, raw)
	}
	return id, nil
}

// ToDomain builds an engine snapshot. Missing ids are generated. Unknown
// profile names and non-finite values are rejected.
func (d *CaseSnapshotDto) ToDomain() (*domain.CaseSnapshot, error) {
	caseID, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	projectID, err := parseID(d.Project.ID)
	if err != nil {
		return nil, err
	}

	currency := domain.Currency(d.Project.Currency)
	if currency == "" {
		currency = domain.CurrencyLocal
	}
	if !currency.Valid() {
		return nil, constants.ErrInvalidCurrency
	}

	s := &domain.CaseSnapshot{
		Case: domain.Case{ID: caseID, ProjectID: projectID, Name: d.Name},
		Project: domain.Project{
			ID:                     projectID,
			Name:                   d.Project.Name,
			OilPriceUSD:            d.Project.OilPriceUSD,
			GasPriceLocal:          d.Project.GasPriceLocal,
			ExchangeRateUSDToLocal: d.Project.ExchangeRateUSDToLocal,
			Currency:               currency,
		},
	}

	if err = applyProfiles(d.Profiles, s.Case.ProfileRefs()); err != nil {
		return nil, fmt.Errorf("case: %w", err)
	}

	assets := []struct {
		kind  domain.AssetKind
		asset *AssetDto
		link  *uuid.UUID
	}{
		{domain.AssetSubstructure, d.Substructure, &s.Case.SubstructureLink},
		{domain.AssetSurf, d.Surf, &s.Case.SurfLink},
		{domain.AssetTopside, d.Topside, &s.Case.TopsideLink},
		{domain.AssetTransport, d.Transport, &s.Case.TransportLink},
		{domain.AssetWellProject, d.WellProject, &s.Case.WellProjectLink},
		{domain.AssetExploration, d.Exploration, &s.Case.ExplorationLink},
		{domain.AssetDrainageStrategy, d.DrainageStrategy, &s.Case.DrainageStrategyLink},
	}
	for _, a := range assets {
		if a.asset == nil {
			continue
		}
		id, err := parseID(a.asset.ID)
		if err != nil {
			return nil, err
		}
		*a.link = id
		s.AttachAsset(a.kind, id)
	}

	for _, owner := range s.Owners()[1:] {
		var profiles map[domain.ProfileName]domain.Profile
		for _, a := range assets {
			if a.kind == owner.Kind {
				profiles = a.asset.Profiles
			}
		}
		if err = applyProfiles(profiles, owner.Refs); err != nil {
			return nil, fmt.Errorf("%s: %w", owner.Kind, err)
		}
	}

	return s, nil
}

func applyProfiles(in map[domain.ProfileName]domain.Profile, refs map[domain.ProfileName]*domain.Profile) error {
	for name, p := range in {
		ref, ok := refs[name]
		if !ok {
			return fmt.Errorf("%w: unknown profile %q", constants.ErrBadRequest, name)
		}
		if err := checkFinite(p); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
		*ref = clone(p)
	}
	return nil
}

func clone(p domain.Profile) domain.Profile {
	var out domain.Profile
	if p.Base != nil {
		b := p.Base.Clone()
		out.Base = &b
	}
	if p.Override != nil {
		out.Override = &domain.Override{TimeSeries: p.Override.Clone(), Active: p.Override.Active}
	}
	return out
}

func checkFinite(p domain.Profile) error {
	var all []float64
	if p.Base != nil {
		all = append(all, p.Base.Values...)
	}
	if p.Override != nil {
		all = append(all, p.Override.Values...)
	}
	for _, v := range all {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", constants.ErrBadRequest)
		}
	}
	return nil
}

func NewProjectDto(p domain.Project) ProjectDto {
	return ProjectDto{
		ID:                     p.ID.String(),
		Name:                   p.Name,
		OilPriceUSD:            p.OilPriceUSD,
		GasPriceLocal:          p.GasPriceLocal,
		ExchangeRateUSDToLocal: p.ExchangeRateUSDToLocal,
		Currency:               string(p.Currency),
	}
}

// FromDomain is the inverse of ToDomain.
func FromDomain(s *domain.CaseSnapshot) *CaseSnapshotDto {
	d := &CaseSnapshotDto{
		ID:       s.Case.ID.String(),
		Name:     s.Case.Name,
		Project:  NewProjectDto(s.Project),
		Profiles: profilesOf(s.Case.ProfileRefs()),
	}

	for _, owner := range s.Owners()[1:] {
		asset := &AssetDto{ID: owner.ID.String(), Profiles: profilesOf(owner.Refs)}
		switch owner.Kind {
		case domain.AssetSubstructure:
			d.Substructure = asset
		case domain.AssetSurf:
			d.Surf = asset
		case domain.AssetTopside:
			d.Topside = asset
		case domain.AssetTransport:
			d.Transport = asset
		case domain.AssetWellProject:
			d.WellProject = asset
		case domain.AssetExploration:
			d.Exploration = asset
		case domain.AssetDrainageStrategy:
			d.DrainageStrategy = asset
		}
	}
	return d
}

func profilesOf(refs map[domain.ProfileName]*domain.Profile) map[domain.ProfileName]domain.Profile {
	out := make(map[domain.ProfileName]domain.Profile)
	for name, p := range refs {
		if p.Base == nil && p.Override == nil {
			continue
		}
		out[name] = clone(*p)
	}
	return out
}
