package models

import (
	"strings"
	"time"
)

// Tag is an entry in the deduplicated autocomplete registry.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeTags trims, lower-cases and deduplicates tags, dropping blanks.
// Order of first appearance is kept.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// DocumentDownloadCount counts downloads of one document of one resource.
type DocumentDownloadCount struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ResourceID       uint      `gorm:"not null;uniqueIndex:idx_download_resource_document" json:"resourceId"`
	DocumentPublicID string    `gorm:"size:255;not null;uniqueIndex:idx_download_resource_document" json:"documentPublicId"`
	Count            int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Announcement is an admin-authored notice shown to parents.
type Announcement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	CreatedByUserID uint      `gorm:"not null;index" json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
