package candidate

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Aleph-Alpha/tagsearch/v1/postgres"
)

// Store reads tag matches.
type Store interface {
	// MatchesForActor returns every match of actorID across all tag sources,
	// ordered by insertion.
	MatchesForActor(ctx context.Context, actorID int64) ([]Match, error)
}

// DBProvider hands out the current GORM handle. *postgres.Postgres
// implements it.
type DBProvider interface {
	DB() *gorm.DB
}

// GormStore is the PostgreSQL-backed Store.
type GormStore struct {
	db  DBProvider
	cfg Config
}

var _ Store = (*GormStore)(nil)

// NewGormStore validates cfg and returns a store reading through db.
func NewGormStore(db DBProvider, cfg Config) (*GormStore, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &GormStore{db: db, cfg: cfg}, nil
}

type matchRow struct {
	TargetID  int64
	TagSource string
	Label     *string
}

// MatchesForActor implements Store.
func (s *GormStore) MatchesForActor(ctx context.Context, actorID int64) ([]Match, error) {
	var rows []matchRow

	err := s.db.DB().WithContext(ctx).
		Table(TagMatch{}.TableName()+" AS tm").
		Select(fmt.Sprintf("tm.target_id, tm.tag_source, t.%s AS label", s.cfg.LabelColumn)).
		Joins(fmt.Sprintf("LEFT JOIN %s AS t ON t.id = tm.target_id", s.cfg.TargetTable)).
		Where("tm.actor_id = ? AND tm.tag_source IN ?", actorID, TagSources).
		Order("tm.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("candidate: query tag matches of actor %d: %w", actorID, postgres.TranslateError(err))
	}

	matches := make([]Match, len(rows))
	for i, r := range rows {
		matches[i] = Match{TargetID: r.TargetID, TagSource: r.TagSource}
		if r.Label != nil {
			matches[i].Label = *r.Label
		}
	}
	return matches, nil
}

// Migrate creates the tag_matches table and its unique index.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.DB().WithContext(ctx).AutoMigrate(&TagMatch{})
}
