package postgres

import (
	"github.com/alx-travel/travelbook/internal/core/datamodel/listing"
	listingpkg "github.com/alx-travel/travelbook/internal/listing"
	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) listingpkg.Repository {
	return &ListingRepository{
		db: db,
	}
}

func (r *ListingRepository) Create(l *listing.Listing) error {
	return r.db.Create(l).Error
}

func (r *ListingRepository) GetByID(id int64) (*listing.Listing, error) {
	var l listing.Listing
	err := r.db.First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) GetAll(onlyAvailable bool, limit, offset int) ([]*listing.Listing, error) {
	var listings []*listing.Listing
	query := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	err := query.Find(&listings).Error
	return listings, err
}
