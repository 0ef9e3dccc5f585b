package repository

import (
	"context"
	"time"

	"childrenlk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DownloadRepository maintains per-document download counters.
type DownloadRepository interface {
	// Increment adds one to the counter for the document, creating it on
	// first use, and returns the new count.
	Increment(ctx context.Context, resourceID uint, documentPublicID string) (int64, error)
	ListForResource(ctx context.Context, resourceID uint) ([]models.DocumentDownloadCount, error)
	Total(ctx context.Context) (int64, error)
}

type downloadRepository struct {
	db *gorm.DB
}

// NewDownloadRepository returns a new DownloadRepository implementation.
func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &downloadRepository{db: db}
}

func (r *downloadRepository) Increment(ctx context.Context, resourceID uint, documentPublicID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.DocumentDownloadCount{
			ResourceID:       resourceID,
			DocumentPublicID: documentPublicID,
			Count:            1,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "resource_id"}, {Name: "document_public_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("document_download_counts.count + 1"),
				"updated_at": time.Now(),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.DocumentDownloadCount{}).
			Where("resource_id = ? AND document_public_id = ?", resourceID, documentPublicID).
			Pluck("count", &count).Error
	})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *downloadRepository) ListForResource(ctx context.Context, resourceID uint) ([]models.DocumentDownloadCount, error) {
	counts := []models.DocumentDownloadCount{}
	if err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("count DESC, document_public_id ASC").
		Find(&counts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}

func (r *downloadRepository) Total(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.DocumentDownloadCount{}).
		Select("COALESCE(SUM(count), 0)").Scan(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}
