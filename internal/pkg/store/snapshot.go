package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/logger"
	"github.com/ougirez/fieldecon/internal/pkg/store/xpgx"
)

var (
	caseColumns = []string{
		"id", "project_id", "name",
		"substructure_link", "surf_link", "topside_link", "transport_link",
		"well_project_link", "exploration_link", "drainage_strategy_link",
	}
	assetColumns   = []string{"id", "kind"}
	profileColumns = []string{"owner_id", "name", "is_override", "override_active", "start_year", "year_values"}
)

type caseRecord struct {
	ID                   uuid.UUID  `db:"id"`
	ProjectID            uuid.UUID  `db:"project_id"`
	Name                 string     `db:"name"`
	SubstructureLink     *uuid.UUID `db:"substructure_link"`
	SurfLink             *uuid.UUID `db:"surf_link"`
	TopsideLink          *uuid.UUID `db:"topside_link"`
	TransportLink        *uuid.UUID `db:"transport_link"`
	WellProjectLink      *uuid.UUID `db:"well_project_link"`
	ExplorationLink      *uuid.UUID `db:"exploration_link"`
	DrainageStrategyLink *uuid.UUID `db:"drainage_strategy_link"`
}

func deref(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func nullable(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func (r caseRecord) toDomain() domain.Case {
	return domain.Case{
		ID:                   r.ID,
		ProjectID:            r.ProjectID,
		Name:                 r.Name,
		SubstructureLink:     deref(r.SubstructureLink),
		SurfLink:             deref(r.SurfLink),
		TopsideLink:          deref(r.TopsideLink),
		TransportLink:        deref(r.TransportLink),
		WellProjectLink:      deref(r.WellProjectLink),
		ExplorationLink:      deref(r.ExplorationLink),
		DrainageStrategyLink: deref(r.DrainageStrategyLink),
	}
}

type assetRecord struct {
	ID   uuid.UUID `db:"id"`
	Kind string    `db:"kind"`
}

type profileRecord struct {
	OwnerID        uuid.UUID `db:"owner_id"`
	Name           string    `db:"name"`
	IsOverride     bool      `db:"is_override"`
	OverrideActive bool      `db:"override_active"`
	StartYear      int       `db:"start_year"`
	YearValues     []byte    `db:"year_values"`
}

func (r profileRecord) toDomain() (domain.ProfileRow, error) {
	values, err := unmarshalValues(r.YearValues)
	if err != nil {
		return domain.ProfileRow{}, fmt.Errorf("profile %s/%s: %w", r.OwnerID, r.Name, err)
	}
	return domain.ProfileRow{
		OwnerID:        r.OwnerID,
		Name:           domain.ProfileName(r.Name),
		IsOverride:     r.IsOverride,
		OverrideActive: r.OverrideActive,
		StartYear:      r.StartYear,
		Values:         values,
	}, nil
}

func selectCaseQuery(caseID uuid.UUID) sq.SelectBuilder {
	return builder().Select(caseColumns...).
		From(tableCases).
		Where(sq.Eq{"id": caseID})
}

func selectAssetsQuery(ids []uuid.UUID) sq.SelectBuilder {
	return builder().Select(assetColumns...).
		From(tableAssets).
		Where(sq.Eq{"id": ids})
}

func selectProfilesQuery(ownerIDs []uuid.UUID) sq.SelectBuilder {
	return builder().Select(profileColumns...).
		From(tableProfiles).
		Where(sq.Eq{"owner_id": ownerIDs}).
		OrderBy("owner_id", "name", "is_override")
}

// GetCaseSnapshot loads a case with its project, linked assets and every
// stored profile. Links to assets that do not exist leave the entity nil.
func (s *store) GetCaseSnapshot(ctx context.Context, caseID uuid.UUID) (*domain.CaseSnapshot, error) {
	rec, err := xpgx.Getx[caseRecord](ctx, s.pool, selectCaseQuery(caseID))
	if err != nil {
		return nil, wrapErr(err)
	}

	snapshot := &domain.CaseSnapshot{Case: rec.toDomain()}
	links := snapshot.Case.Links()

	linkIDs := make([]uuid.UUID, 0, len(links))
	for _, id := range links {
		linkIDs = append(linkIDs, id)
	}

	var (
		project  domain.Project
		assets   []assetRecord
		profiles []profileRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = xpgx.Getx[domain.Project](gctx, s.pool, selectProjectQuery(rec.ProjectID))
		if err != nil {
			return fmt.Errorf("get project: %w", wrapErr(err))
		}
		return nil
	})
	g.Go(func() error {
		if len(linkIDs) == 0 {
			return nil
		}
		var err error
		assets, err = xpgx.Selectx[assetRecord](gctx, s.pool, selectAssetsQuery(linkIDs))
		if err != nil {
			return fmt.Errorf("list assets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profiles, err = xpgx.Selectx[profileRecord](gctx, s.pool, selectProfilesQuery(append([]uuid.UUID{caseID}, linkIDs...)))
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		logger.Errorf(ctx, "GetCaseSnapshot %s: %s", caseID, err.Error())
		return nil, err
	}

	snapshot.Project = project
	if err = assemble(ctx, snapshot, links, assets, profiles); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func assemble(
	ctx context.Context,
	snapshot *domain.CaseSnapshot,
	links map[domain.AssetKind]uuid.UUID,
	assets []assetRecord,
	profiles []profileRecord,
) error {
	existing := make(map[uuid.UUID]domain.AssetKind, len(assets))
	for _, a := range assets {
		existing[a.ID] = domain.AssetKind(a.Kind)
	}

	for kind, id := range links {
		storedKind, ok := existing[id]
		if !ok {
			continue
		}
		if storedKind != kind {
			logger.Warnf(ctx, "case %s links %s to asset %s of kind %s", snapshot.Case.ID, kind, id, storedKind)
			continue
		}
		snapshot.AttachAsset(kind, id)
	}

	refsByOwner := make(map[uuid.UUID]map[domain.ProfileName]*domain.Profile)
	for _, owner := range snapshot.Owners() {
		refsByOwner[owner.ID] = owner.Refs
	}

	for _, rec := range profiles {
		refs, ok := refsByOwner[rec.OwnerID]
		if !ok {
			continue
		}
		row, err := rec.toDomain()
		if err != nil {
			return err
		}
		if !row.Apply(refs) {
			logger.Warnf(ctx, "unknown profile %q on owner %s", rec.Name, rec.OwnerID)
		}
	}
	return nil
}

func upsertAssetsQuery(owners []domain.ProfileOwner) (sq.InsertBuilder, bool) {
	query := builder().Insert(tableAssets).Columns(assetColumns...)

	n := 0
	for _, o := range owners {
		if o.Kind == "" {
			continue
		}
		query = query.Values(o.ID, string(o.Kind))
		n++
	}

	return query.Suffix(`on conflict (id) do update set kind = excluded.kind`), n > 0
}

func upsertCaseQuery(c domain.Case) sq.InsertBuilder {
	return builder().Insert(tableCases).
		Columns(caseColumns...).
		Values(
			c.ID, c.ProjectID, c.Name,
			nullable(c.SubstructureLink), nullable(c.SurfLink), nullable(c.TopsideLink), nullable(c.TransportLink),
			nullable(c.WellProjectLink), nullable(c.ExplorationLink), nullable(c.DrainageStrategyLink),
		).
		Suffix(`
on conflict (id)
do update
set
	project_id = excluded.project_id,
	name = excluded.name,
	substructure_link = excluded.substructure_link,
	surf_link = excluded.surf_link,
	topside_link = excluded.topside_link,
	transport_link = excluded.transport_link,
	well_project_link = excluded.well_project_link,
	exploration_link = excluded.exploration_link,
	drainage_strategy_link = excluded.drainage_strategy_link,
	updated_at = now()`)
}

func deleteProfilesQuery(ownerIDs []uuid.UUID) sq.DeleteBuilder {
	return builder().Delete(tableProfiles).Where(sq.Eq{"owner_id": ownerIDs})
}

func insertProfilesQuery(rows []domain.ProfileRow) (sq.InsertBuilder, error) {
	query := builder().Insert(tableProfiles).Columns(profileColumns...)

	for _, row := range rows {
		valuesJSON, err := marshalValues(row.Values)
		if err != nil {
			return query, fmt.Errorf("failed to marshal profile %s: %w", row.Name, err)
		}
		query = query.Values(row.OwnerID, string(row.Name), row.IsOverride, row.OverrideActive, row.StartYear, valuesJSON)
	}

	return query, nil
}

// SaveCaseSnapshot replaces the stored case, its project, assets and profiles
// with the snapshot contents in one transaction.
func (s *store) SaveCaseSnapshot(ctx context.Context, snapshot *domain.CaseSnapshot) error {
	owners := snapshot.Owners()

	ownerIDs := make([]uuid.UUID, 0, len(owners))
	var rows []domain.ProfileRow
	for _, o := range owners {
		ownerIDs = append(ownerIDs, o.ID)
		rows = append(rows, domain.Rows(o.ID, o.Refs)...)
	}

	return s.inTx(ctx, func(tx Pool) error {
		if _, err := xpgx.Execx(ctx, tx, upsertProjectQuery(snapshot.Project)); err != nil {
			return fmt.Errorf("upsertProject: %w", err)
		}

		if query, ok := upsertAssetsQuery(owners); ok {
			if _, err := xpgx.Execx(ctx, tx, query); err != nil {
				return fmt.Errorf("upsertAssets: %w", err)
			}
		}

		if _, err := xpgx.Execx(ctx, tx, upsertCaseQuery(snapshot.Case)); err != nil {
			return fmt.Errorf("upsertCase: %w", err)
		}

		if _, err := xpgx.Execx(ctx, tx, deleteProfilesQuery(ownerIDs)); err != nil {
			return fmt.Errorf("deleteProfiles: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}
		query, err := insertProfilesQuery(rows)
		if err != nil {
			return err
		}
		if _, err = xpgx.Execx(ctx, tx, query); err != nil {
			logger.Error(ctx, err.Error())
			return fmt.Errorf("insertProfiles: %w", err)
		}
		return nil
	})
}

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// inTx runs fn in a transaction when the pool supports one.
func (s *store) inTx(ctx context.Context, fn func(tx Pool) error) error {
	b, ok := s.pool.(txBeginner)
	if !ok {
		return fn(s.pool)
	}
	return pgx.BeginFunc(ctx, b, func(tx pgx.Tx) error {
		return fn(tx)
	})
}
