package repository

import (
	"context"
	"strings"

	"childrenlk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository manages the autocomplete tag registry.
type TagRepository interface {
	// Upsert inserts names that are not registered yet. Names must already
	// be normalized.
	Upsert(ctx context.Context, names []string) error
	Search(ctx context.Context, prefix string, limit int) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Upsert(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tags := make([]models.Tag, 0, len(names))
	for _, n := range names {
		tags = append(tags, models.Tag{Name: n})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&tags).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tagRepository) Search(ctx context.Context, prefix string, limit int) ([]string, error) {
	names := []string{}
	q := r.db.WithContext(ctx).Model(&models.Tag{})
	if p := strings.ToLower(strings.TrimSpace(prefix)); p != "" {
		q = q.Where(`name LIKE ? ESCAPE '\'`, escapeLike(p)+"%")
	}
	if err := q.Order("name ASC").Limit(limit).Pluck("name", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}
