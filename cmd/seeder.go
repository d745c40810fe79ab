package cmd

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/alx-travel/travelbook/internal/core/datamodel/booking"
	"github.com/alx-travel/travelbook/internal/core/datamodel/listing"
	"github.com/alx-travel/travelbook/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users, listings and bookings for development`,
	RunE:  runSeed,
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open gorm connection: %w", err)
	}

	if clearData {
		fmt.Println("Clearing existing data...")
		for _, table := range []string{"payments", "bookings", "listings", "users"} {
			if err := gormDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	users, err := seedUsers(gormDB)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	fmt.Printf("Seeded %d users\n", len(users))

	listings, err := seedListings(gormDB)
	if err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}
	fmt.Printf("Seeded %d listings\n", len(listings))

	bookings, err := seedBookings(gormDB, users, listings)
	if err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}
	fmt.Printf("Seeded %d bookings\n", len(bookings))

	fmt.Println("Seeding completed successfully")
	return nil
}

func seedUsers(db *gorm.DB) ([]*user.User, error) {
	samples := []struct {
		email     string
		firstName string
		lastName  string
	}{
		{"abebe.kebede@example.com", "Abebe", "Kebede"},
		{"sara.tesfaye@example.com", "Sara", "Tesfaye"},
		{"daniel.girma@example.com", "Daniel", "Girma"},
	}

	users := make([]*user.User, 0, len(samples))
	for _, s := range samples {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		u := &user.User{
			Email:        s.email,
			FirstName:    s.firstName,
			LastName:     s.lastName,
			PasswordHash: string(hash),
		}
		if err := db.Where(user.User{Email: u.Email}).FirstOrCreate(u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

func seedListings(db *gorm.DB) ([]*listing.Listing, error) {
	samples := []*listing.Listing{
		{
			Title:         "Lakeside Cottage in Bahir Dar",
			Description:   "Two-bedroom cottage overlooking Lake Tana, ten minutes from the boat pier.",
			PricePerNight: 85.00,
			Location:      "Bahir Dar",
			Available:     true,
		},
		{
			Title:         "Bole Apartment with City View",
			Description:   "Modern one-bedroom apartment near the airport, fast wifi and workspace.",
			PricePerNight: 60.00,
			Location:      "Addis Ababa",
			Available:     true,
		},
		{
			Title:         "Stone Lodge near Lalibela Churches",
			Description:   "Traditional lodge a short walk from the rock-hewn churches.",
			PricePerNight: 110.00,
			Location:      "Lalibela",
			Available:     true,
		},
		{
			Title:         "Simien Mountains Base Camp Cabin",
			Description:   "Rustic cabin at the park entrance, trekking guides arranged on request.",
			PricePerNight: 45.00,
			Location:      "Debark",
			Available:     false,
		},
	}

	for _, l := range samples {
		if err := db.Where(listing.Listing{Title: l.Title}).FirstOrCreate(l).Error; err != nil {
			return nil, err
		}
	}

	return samples, nil
}

func seedBookings(db *gorm.DB, users []*user.User, listings []*listing.Listing) ([]*booking.Booking, error) {
	if len(users) == 0 || len(listings) == 0 {
		return nil, nil
	}

	checkIn := time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)

	b := &booking.Booking{
		UserID:     users[0].ID,
		ListingID:  listings[0].ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     2,
		TotalPrice: float64(3) * listings[0].PricePerNight,
		Status:     booking.StatusPending,
	}
	if err := db.Where(booking.Booking{UserID: b.UserID, ListingID: b.ListingID}).FirstOrCreate(b).Error; err != nil {
		return nil, err
	}

	return []*booking.Booking{b}, nil
}
