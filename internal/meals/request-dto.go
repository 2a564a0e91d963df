package meals

type CreateMealRequest struct {
	Name           string       `json:"name" validate:"required,notblank,min=3,max=200"`
	Description    string       `json:"description" validate:"max=5000"`
	MealType       MealType     `json:"mealType" validate:"required,oneof=veg nonveg buffet"`
	ServingStyle   ServingStyle `json:"servingStyle" validate:"required,oneof=plated buffet family_style boxed cocktail"`
	Cuisine        string       `json:"cuisine" validate:"max=100"`
	PricePerPerson float64      `json:"pricePerPerson" validate:"required,gt=0"`
	MinimumGuests  int          `json:"minimumGuests" validate:"omitempty,min=1,max=10000"`
	DietaryTags    []string     `json:"dietaryTags" validate:"omitempty,max=20,dive,notblank,max=50"`
}

// UpdateMealRequest changes only the supplied fields
type UpdateMealRequest struct {
	Name           *string       `json:"name" validate:"omitempty,notblank,min=3,max=200"`
	Description    *string       `json:"description" validate:"omitempty,max=5000"`
	MealType       *MealType     `json:"mealType" validate:"omitempty,oneof=veg nonveg buffet"`
	ServingStyle   *ServingStyle `json:"servingStyle" validate:"omitempty,oneof=plated buffet family_style boxed cocktail"`
	Cuisine        *string       `json:"cuisine" validate:"omitempty,max=100"`
	PricePerPerson *float64      `json:"pricePerPerson" validate:"omitempty,gt=0"`
	MinimumGuests  *int          `json:"minimumGuests" validate:"omitempty,min=1,max=10000"`
	DietaryTags    *[]string     `json:"dietaryTags" validate:"omitempty,max=20,dive,notblank,max=50"`
	IsAvailable    *bool         `json:"isAvailable"`
}
