package meals

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealTypeVeg    MealType = "veg"
	MealTypeNonVeg MealType = "nonveg"
	MealTypeBuffet MealType = "buffet"
)

type ServingStyle string

const (
	ServingPlated      ServingStyle = "plated"
	ServingBuffet      ServingStyle = "buffet"
	ServingFamilyStyle ServingStyle = "family_style"
	ServingBoxed       ServingStyle = "boxed"
	ServingCocktail    ServingStyle = "cocktail"
)

// Meal is a catering package priced per guest
type Meal struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OrganizerID    uuid.UUID    `json:"organizerId" gorm:"type:uuid;not null;index"`
	Name           string       `json:"name" gorm:"not null;size:200"`
	Description    string       `json:"description" gorm:"type:text"`
	MealType       MealType     `json:"mealType" gorm:"type:varchar(10);not null;index"`
	ServingStyle   ServingStyle `json:"servingStyle" gorm:"type:varchar(20);not null"`
	Cuisine        string       `json:"cuisine" gorm:"size:100"`
	PricePerPerson float64      `json:"pricePerPerson" gorm:"type:numeric(12,2);not null;check:price_per_person > 0"`
	MinimumGuests  int          `json:"minimumGuests" gorm:"not null;default:1;check:minimum_guests >= 1"`
	DietaryTags    []string     `json:"dietaryTags" gorm:"type:jsonb;serializer:json"`
	IsAvailable    bool         `json:"isAvailable" gorm:"not null;default:true;index"`
	CreatedAt      time.Time    `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Filters narrows meal listings
type Filters struct {
	MealType     string   `form:"mealType" validate:"omitempty,oneof=veg nonveg buffet"`
	ServingStyle string   `form:"servingStyle" validate:"omitempty,oneof=plated buffet family_style boxed cocktail"`
	MinPrice     *float64 `form:"minPrice" validate:"omitempty,min=0"`
	MaxPrice     *float64 `form:"maxPrice" validate:"omitempty,min=0"`
	DietaryTag   string   `form:"dietaryTag" validate:"omitempty,max=50"`
	IsAvailable  *bool    `form:"isAvailable"`
}
