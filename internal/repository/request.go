package repository

import (
	"context"
	"time"

	"childrenlk/internal/models"

	"gorm.io/gorm"
)

// RequestFilter narrows request listings.
type RequestFilter struct {
	Status models.RequestStatus
	Limit  int
	Offset int
}

// Decision is a review outcome applied to a pending request.
type Decision struct {
	Status      models.RequestStatus
	AdminReason *string
	ReviewerID  uint
	At          time.Time
}

// RequestRepository defines persistence operations shared by the four
// request families. Reads take the calling actor and apply OrganizationScope.
type RequestRepository interface {
	Create(ctx context.Context, req models.Request) error
	// List returns a pointer to a slice of the kind's request type.
	List(ctx context.Context, kind models.RequestKind, actor models.Actor, filter RequestFilter) (any, int64, error)
	Get(ctx context.Context, kind models.RequestKind, actor models.Actor, id uint) (models.Request, error)
	// Review moves a pending request to a terminal status. On approval the
	// published copy is inserted in the same transaction.
	Review(ctx context.Context, kind models.RequestKind, id uint, d Decision) (models.Request, error)
	CountByStatus(ctx context.Context, kind models.RequestKind, organizationID *uint) (map[models.RequestStatus]int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository returns a new RequestRepository implementation.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req models.Request) error {
	state := req.State()
	state.Status = models.RequestStatusPending
	state.AdminReason = nil
	state.ReviewedAt = nil
	state.ReviewedByUserID = nil

	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *requestRepository) List(ctx context.Context, kind models.RequestKind, actor models.Actor, filter RequestFilter) (any, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(kind.NewRequest()).Scopes(OrganizationScope(actor))
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	list := kind.NewRequestList()
	if err := query().Order("created_at DESC, id DESC").Scopes(Paginate(filter.Limit, filter.Offset)).Find(list).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return list, total, nil
}

func (r *requestRepository) Get(ctx context.Context, kind models.RequestKind, actor models.Actor, id uint) (models.Request, error) {
	req := kind.NewRequest()
	if err := r.db.WithContext(ctx).Scopes(OrganizationScope(actor)).First(req, id).Error; err != nil {
		return nil, wrapLookup(err, kind.Label(), id)
	}
	return req, nil
}

func (r *requestRepository) Review(ctx context.Context, kind models.RequestKind, id uint, d Decision) (models.Request, error) {
	req := kind.NewRequest()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(kind.NewRequest()).
			Where("id = ? AND status = ?", id, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":              d.Status,
				"admin_reason":        d.AdminReason,
				"reviewed_at":         d.At,
				"reviewed_by_user_id": d.ReviewerID,
			})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(kind.NewRequest()).Where("id = ?", id).Count(&n).Error; err != nil {
				return models.NewInternalError(err)
			}
			if n == 0 {
				return models.NewNotFoundError(kind.Label(), id)
			}
			return models.NewConflictError("Request already reviewed")
		}

		if err := tx.First(req, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		if d.Status != models.RequestStatusApproved {
			return nil
		}
		if err := tx.Create(req.Publish()).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Request already reviewed")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) CountByStatus(ctx context.Context, kind models.RequestKind, organizationID *uint) (map[models.RequestStatus]int64, error) {
	var rows []struct {
		Status models.RequestStatus
		Count  int64
	}
	q := r.db.WithContext(ctx).Model(kind.NewRequest()).Select("status, COUNT(*) AS count")
	if organizationID != nil {
		q = q.Where("organization_id = ?", *organizationID)
	}
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := map[models.RequestStatus]int64{
		models.RequestStatusPending:  0,
		models.RequestStatusApproved: 0,
		models.RequestStatusDenied:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
