package models

import "time"

// Customer represents a registered customer. Email is unique across all rows.
type Customer struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FirstName   string    `gorm:"type:varchar(100);not null"`
	LastName    string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNumber *string   `gorm:"type:varchar(20)"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null"`
}

// All lists every model managed by the store, in migration order.
func All() []any {
	return []any{&Category{}, &Product{}, &Customer{}}
}
