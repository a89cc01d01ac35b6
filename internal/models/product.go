package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store.
type Product struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Description   *string         `gorm:"type:varchar(500)"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	CategoryID    string          `gorm:"type:varchar(36);not null;index"`
	Category      *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;not null"`
	UpdatedAt     *time.Time      `gorm:"autoUpdateTime:false"`
}
