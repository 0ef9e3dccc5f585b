package repository

import (
	"context"
	"encoding/json"
	"strings"

	"childrenlk/internal/models"

	"gorm.io/gorm"
)

// PublicFilter narrows public listings of published entities. Audience
// filters are ignored for kinds without audience metadata.
type PublicFilter struct {
	Tag            string
	TargetAudience models.TargetAudience
	AgeGroup       models.AgeGroup
	Query          string
	OrganizationID *uint
	Limit          int
	Offset         int
}

// PublishedRepository reads and manages the published copies of approved
// requests.
type PublishedRepository interface {
	List(ctx context.Context, kind models.RequestKind, filter PublicFilter) (any, int64, error)
	Get(ctx context.Context, kind models.RequestKind, id uint) (any, error)
	GetResource(ctx context.Context, id uint) (*models.Resource, error)
	Delete(ctx context.Context, kind models.RequestKind, id uint) error
	Count(ctx context.Context, kind models.RequestKind, organizationID *uint) (int64, error)
}

type publishedRepository struct {
	db *gorm.DB
}

// NewPublishedRepository returns a new PublishedRepository implementation.
func NewPublishedRepository(db *gorm.DB) PublishedRepository {
	return &publishedRepository{db: db}
}

func (r *publishedRepository) List(ctx context.Context, kind models.RequestKind, filter PublicFilter) (any, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(kind.NewPublished())
		if filter.OrganizationID != nil {
			q = q.Where("organization_id = ?", *filter.OrganizationID)
		}
		if tag := strings.ToLower(strings.TrimSpace(filter.Tag)); tag != "" {
			q = q.Scopes(TagContains(tag))
		}
		if kind.HasAudience() {
			if filter.TargetAudience != "" {
				q = q.Where("target_audience = ?", filter.TargetAudience)
			}
			if filter.AgeGroup != "" {
				q = q.Where("age_group = ?", filter.AgeGroup)
			}
		}
		if s := strings.TrimSpace(filter.Query); s != "" {
			q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(s))+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	list := kind.NewPublishedList()
	if err := query().Order("created_at DESC, id DESC").Scopes(Paginate(filter.Limit, filter.Offset)).Find(list).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return list, total, nil
}

func (r *publishedRepository) Get(ctx context.Context, kind models.RequestKind, id uint) (any, error) {
	entity := kind.NewPublished()
	if err := r.db.WithContext(ctx).First(entity, id).Error; err != nil {
		return nil, wrapLookup(err, kind.PublishedLabel(), id)
	}
	return entity, nil
}

func (r *publishedRepository) GetResource(ctx context.Context, id uint) (*models.Resource, error) {
	var res models.Resource
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, wrapLookup(err, models.KindResource.PublishedLabel(), id)
	}
	return &res, nil
}

func (r *publishedRepository) Delete(ctx context.Context, k models.RequestKind, id uint) error {
	res := r.db.WithContext(ctx).Delete(k.NewPublished(), id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(k.PublishedLabel(), id)
	}
	return nil
}

func (r *publishedRepository) Count(ctx context.Context, k models.RequestKind, organizationID *uint) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(k.NewPublished())
	if organizationID != nil {
		q = q.Where("organization_id = ?", *organizationID)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// TagContains matches rows whose JSON tags array contains tag.
func TagContains(tag string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db.Dialector.Name() == "postgres" {
			arr, _ := json.Marshal([]string{tag})
			return db.Where("tags @> ?::jsonb", string(arr))
		}
		return db.Where("EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)", tag)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
