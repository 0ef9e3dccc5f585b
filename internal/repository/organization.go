package repository

import (
	"context"
	"errors"

	"childrenlk/internal/models"

	"gorm.io/gorm"
)

// OrganizationRepository defines persistence operations for organizations.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Organization, error)
	// GetByOwner returns nil, nil when the user owns no organization.
	GetByOwner(ctx context.Context, ownerUserID uint) (*models.Organization, error)
	// CreateWithOwner inserts an organizer account and its organization
	// atomically.
	CreateWithOwner(ctx context.Context, owner *models.User, org *models.Organization) error
	Update(ctx context.Context, org *models.Organization) error
	List(ctx context.Context, limit, offset int) ([]models.Organization, int64, error)
	Count(ctx context.Context) (int64, error)
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository returns a new OrganizationRepository implementation.
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, wrapLookup(err, "Organization", id)
	}
	return &org, nil
}

func (r *organizationRepository) GetByOwner(ctx context.Context, ownerUserID uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &org, nil
}

func (r *organizationRepository) CreateWithOwner(ctx context.Context, owner *models.User, org *models.Organization) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Organization").Create(owner).Error; err != nil {
			return err
		}
		org.OwnerUserID = owner.ID
		return tx.Create(org).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *organizationRepository) Update(ctx context.Context, org *models.Organization) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *organizationRepository) List(ctx context.Context, limit, offset int) ([]models.Organization, int64, error) {
	var (
		orgs  []models.Organization
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&models.Organization{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Order("name ASC").Scopes(Paginate(limit, offset)).Find(&orgs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return orgs, total, nil
}

func (r *organizationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Organization{}).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
