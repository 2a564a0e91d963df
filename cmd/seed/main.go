package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"venuebook/internal/meals"
	"venuebook/internal/organizers"
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/database"
	"venuebook/internal/users"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
)

const demoPassword = "Password123!"

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Venuebook Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	db, err := database.InitDB(ctx, cfg, logger.NewWithLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	if len(os.Args) > 1 && os.Args[1] == "--clean" {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(ctx); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Printf("\n🎉 Seeding completed! Demo accounts use password %q\n", demoPassword)
}

// CleanDatabase truncates every table in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{"payments", "events", "meals", "venues", "organizers", "users"}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds demo accounts and the catalog
func (s *Seeder) SeedAll(ctx context.Context) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	organizerID, err := s.SeedOrganizer(ctx, string(hashed))
	if err != nil {
		return fmt.Errorf("failed to seed organizer: %w", err)
	}
	if err := s.SeedCustomers(ctx, string(hashed)); err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}
	if err := s.SeedVenues(ctx, organizerID); err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}
	if err := s.SeedMeals(ctx, organizerID); err != nil {
		return fmt.Errorf("failed to seed meals: %w", err)
	}

	// Drop cached catalog pages so the new rows show up immediately
	cacheService := cache.NewService(s.db.GetRedis())
	for _, pattern := range []string{constants.PATTERN_INVALIDATE_VENUES, constants.PATTERN_INVALIDATE_MEALS} {
		if err := cacheService.DeletePattern(ctx, pattern); err != nil {
			log.Printf("Warning: Failed to clear cache %s: %v", pattern, err)
		}
	}

	return nil
}

func (s *Seeder) SeedOrganizer(ctx context.Context, hashed string) (uuid.UUID, error) {
	fmt.Println("  🏢 Seeding organizer...")

	organizer := &organizers.Organizer{
		Name:        "Demo Organizer",
		Email:       "organizer@venuebook.dev",
		Password:    hashed,
		Phone:       "01711000000",
		CompanyName: "Venuebook Events Ltd",
		Role:        constants.RoleOrganizer,
		IsActive:    true,
	}
	if err := organizers.NewRepository(s.db.GetPostgreSQL()).Create(ctx, organizer); err != nil {
		return uuid.Nil, err
	}

	fmt.Printf("    ✅ Created organizer: %s\n", organizer.Email)
	return organizer.ID, nil
}

func (s *Seeder) SeedCustomers(ctx context.Context, hashed string) error {
	fmt.Println("  👤 Seeding customers...")

	repo := users.NewRepository(s.db.GetPostgreSQL())
	customers := []struct{ name, email, phone string }{
		{"Rahim Uddin", "rahim@venuebook.dev", "01812000001"},
		{"Nusrat Jahan", "nusrat@venuebook.dev", "01912000002"},
	}

	for _, c := range customers {
		user := &users.User{
			Name:     c.name,
			Email:    c.email,
			Password: hashed,
			Phone:    c.phone,
			Role:     constants.RoleCustomer,
			IsActive: true,
		}
		if err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("create %s: %w", c.email, err)
		}
		fmt.Printf("    ✅ Created customer: %s\n", user.Email)
	}
	return nil
}

func (s *Seeder) SeedVenues(ctx context.Context, organizerID uuid.UUID) error {
	fmt.Println("  🏛️ Seeding venues...")

	repo := venues.NewRepository(s.db.GetPostgreSQL())
	eveningsOnFriday := venues.OperatingHours{
		"friday": {Open: "14:00", Close: "23:00"},
	}

	catalog := []venues.Venue{
		{
			Name:         "Grand Ballroom",
			Description:  "Chandeliered hall for weddings and receptions",
			VenueType:    venues.VenueTypeBanquetHall,
			Address:      "12 Gulshan Avenue",
			City:         "Dhaka",
			Capacity:     500,
			PricingUnit:  venues.PricingHourly,
			PricePerHour: 1000,
			PricePerDay:  20000,
			MinimumHours: 2,
			Facilities:   []string{"parking", "stage", "sound_system", "air_conditioning"},
		},
		{
			Name:           "Skyline Rooftop",
			Description:    "Open-air rooftop with a city view",
			VenueType:      venues.VenueTypeRooftop,
			Address:        "88 Banani Road 11",
			City:           "Dhaka",
			Capacity:       120,
			PricingUnit:    venues.PricingHourly,
			PricePerHour:   1500,
			MinimumHours:   3,
			Facilities:     []string{"bar", "lighting"},
			OperatingHours: eveningsOnFriday,
		},
		{
			Name:         "Harbor Convention Center",
			Description:  "Conference halls with breakout rooms",
			VenueType:    venues.VenueTypeConferenceHall,
			Address:      "5 Agrabad C/A",
			City:         "Chattogram",
			Capacity:     800,
			PricingUnit:  venues.PricingDaily,
			PricePerDay:  45000,
			MinimumHours: 1,
			Facilities:   []string{"projector", "wifi", "parking"},
		},
	}

	for i := range catalog {
		venue := &catalog[i]
		venue.OrganizerID = organizerID
		venue.IsActive = true
		if err := repo.Create(ctx, venue); err != nil {
			return fmt.Errorf("create venue %s: %w", venue.Name, err)
		}
		fmt.Printf("    ✅ Created venue: %s (%s)\n", venue.Name, venue.City)
	}
	return nil
}

func (s *Seeder) SeedMeals(ctx context.Context, organizerID uuid.UUID) error {
	fmt.Println("  🍽️ Seeding meals...")

	repo := meals.NewRepository(s.db.GetPostgreSQL())
	catalog := []meals.Meal{
		{
			Name:           "Royal Kacchi Feast",
			Description:    "Mutton kacchi biryani with borhani and firni",
			MealType:       meals.MealTypeNonVeg,
			ServingStyle:   meals.ServingBuffet,
			Cuisine:        "Bangladeshi",
			PricePerPerson: 850,
			MinimumGuests:  50,
			DietaryTags:    []string{"halal"},
		},
		{
			Name:           "Garden Vegetarian Platter",
			Description:    "Seasonal vegetables, dal and pulao",
			MealType:       meals.MealTypeVeg,
			ServingStyle:   meals.ServingPlated,
			Cuisine:        "Indian",
			PricePerPerson: 450,
			MinimumGuests:  20,
			DietaryTags:    []string{"vegetarian", "gluten_free"},
		},
		{
			Name:           "Continental Cocktail Bites",
			Description:    "Canapes and finger food",
			MealType:       meals.MealTypeBuffet,
			ServingStyle:   meals.ServingCocktail,
			Cuisine:        "Continental",
			PricePerPerson: 600,
			MinimumGuests:  10,
		},
	}

	for i := range catalog {
		meal := &catalog[i]
		meal.OrganizerID = organizerID
		meal.IsAvailable = true
		if err := repo.Create(ctx, meal); err != nil {
			return fmt.Errorf("create meal %s: %w", meal.Name, err)
		}
		fmt.Printf("    ✅ Created meal: %s\n", meal.Name)
	}
	return nil
}
