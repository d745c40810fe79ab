package listing_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alx-travel/travelbook/internal"
	listingmodel "github.com/alx-travel/travelbook/internal/core/datamodel/listing"
	listingPkg "github.com/alx-travel/travelbook/internal/listing"
)

func TestListing(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Listing Suite")
}

type mockListingRepository struct {
	listings    map[int64]*listingmodel.Listing
	createError error
	getError    error
}

func newMockListingRepository() *mockListingRepository {
	return &mockListingRepository{listings: make(map[int64]*listingmodel.Listing)}
}

func (m *mockListingRepository) Create(l *listingmodel.Listing) error {
	if m.createError != nil {
		return m.createError
	}
	l.ID = int64(len(m.listings) + 1)
	m.listings[l.ID] = l
	return nil
}

func (m *mockListingRepository) GetByID(id int64) (*listingmodel.Listing, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	l, exists := m.listings[id]
	if !exists {
		return nil, errors.New("listing not found")
	}
	return l, nil
}

func (m *mockListingRepository) GetAll(onlyAvailable bool, limit, offset int) ([]*listingmodel.Listing, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*listingmodel.Listing
	for _, l := range m.listings {
		if onlyAvailable && !l.Available {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

var _ = Describe("ListingService", func() {
	var (
		service  *listingPkg.Service
		mockRepo *mockListingRepository
	)

	BeforeEach(func() {
		mockRepo = newMockListingRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = listingPkg.NewService(mockRepo, logger)
	})

	Describe("CreateListing", func() {
		Context("when the request is valid", func() {
			It("should create an available listing by default", func() {
				l, err := service.CreateListing(listingPkg.CreateListingDTO{
					Title:         "Lakeside Cottage",
					Description:   "Two-bedroom cottage overlooking Lake Tana.",
					PricePerNight: 85.00,
					Location:      "Bahir Dar",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(l.ID).To(BeNumerically(">", 0))
				Expect(l.Available).To(BeTrue())
			})

			It("should honour an explicit availability flag", func() {
				available := false
				l, err := service.CreateListing(listingPkg.CreateListingDTO{
					Title:         "Closed Lodge",
					PricePerNight: 110.00,
					Location:      "Lalibela",
					Available:     &available,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(l.Available).To(BeFalse())
			})
		})

		Context("when required fields are missing", func() {
			It("should return a validation error", func() {
				l, err := service.CreateListing(listingPkg.CreateListingDTO{
					PricePerNight: 85.00,
				})

				Expect(l).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})

		Context("when the price is negative", func() {
			It("should return a validation error", func() {
				l, err := service.CreateListing(listingPkg.CreateListingDTO{
					Title:         "Lakeside Cottage",
					PricePerNight: -1,
					Location:      "Bahir Dar",
				})

				Expect(l).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})
	})

	Describe("GetListingByID", func() {
		It("should return a not found error for an unknown id", func() {
			l, err := service.GetListingByID(999)

			Expect(l).To(BeNil())
			Expect(err).To(MatchError(internal.ErrListingNotFound))
		})
	})

	Describe("GetListings", func() {
		BeforeEach(func() {
			available := false
			for _, dto := range []listingPkg.CreateListingDTO{
				{Title: "A", PricePerNight: 85, Location: "Bahir Dar"},
				{Title: "B", PricePerNight: 60, Location: "Addis Ababa"},
				{Title: "C", PricePerNight: 45, Location: "Debark", Available: &available},
			} {
				_, err := service.CreateListing(dto)
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should return every listing by default", func() {
			listings, err := service.GetListings(false, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(listings).To(HaveLen(3))
		})

		It("should filter to available listings on request", func() {
			listings, err := service.GetListings(true, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(listings).To(HaveLen(2))
		})
	})
})
