package models

import "time"

// Category groups products. Deleting a category that still owns products is
// rejected by the store.
type Category struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)"`
	Name        string     `gorm:"type:varchar(100);not null"`
	Description *string    `gorm:"type:varchar(500)"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}
