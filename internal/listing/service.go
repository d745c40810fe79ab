package listing

import (
	"log/slog"

	"github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/core/datamodel/listing"
)

type Repository interface {
	Create(l *listing.Listing) error
	GetByID(id int64) (*listing.Listing, error)
	GetAll(onlyAvailable bool, limit, offset int) ([]*listing.Listing, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateListing(dto CreateListingDTO) (*listing.Listing, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("listing validation failed", "error", err)
		return nil, err
	}

	l := &listing.Listing{
		Title:         dto.Title,
		Description:   dto.Description,
		PricePerNight: dto.PricePerNight,
		Location:      dto.Location,
		Available:     true,
	}
	if dto.Available != nil {
		l.Available = *dto.Available
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create listing", "error", err, "title", dto.Title)
		return nil, internal.NewInternalError("failed to create listing", err)
	}

	s.logger.Info("listing created", "listing_id", l.ID, "title", l.Title)
	return l, nil
}

func (s *Service) GetListingByID(id int64) (*listing.Listing, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get listing", "error", err, "listing_id", id)
		return nil, internal.ErrListingNotFound
	}
	return l, nil
}

func (s *Service) GetListings(onlyAvailable bool, limit, offset int) ([]*listing.Listing, error) {
	if limit <= 0 {
		limit = 20
	}
	listings, err := s.repo.GetAll(onlyAvailable, limit, offset)
	if err != nil {
		s.logger.Error("failed to get listings", "error", err)
		return nil, internal.NewInternalError("failed to get listings", err)
	}
	return listings, nil
}
