package listing

import "time"

type Listing struct {
	ID            int64     `gorm:"primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Description   string    `gorm:"column:description;type:text"`
	PricePerNight float64   `gorm:"column:price_per_night;not null"`
	Location      string    `gorm:"column:location;not null"`
	Available     bool      `gorm:"column:available;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Listing) TableName() string {
	return "listings"
}
