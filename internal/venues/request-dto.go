package venues

type CreateVenueRequest struct {
	Name           string         `json:"name" validate:"required,notblank,min=3,max=200"`
	Description    string         `json:"description" validate:"max=5000"`
	VenueType      VenueType      `json:"venueType" validate:"required,oneof=banquet_hall conference_hall outdoor rooftop restaurant community_center"`
	Address        string         `json:"address" validate:"required,notblank,max=500"`
	City           string         `json:"city" validate:"required,notblank,max=100"`
	Capacity       int            `json:"capacity" validate:"required,min=1,max=100000"`
	PricingUnit    PricingUnit    `json:"pricingUnit" validate:"required,oneof=hourly daily"`
	PricePerHour   float64        `json:"pricePerHour" validate:"required_if=PricingUnit hourly,gte=0"`
	PricePerDay    float64        `json:"pricePerDay" validate:"required_if=PricingUnit daily,gte=0"`
	MinimumHours   int            `json:"minimumHours" validate:"omitempty,min=1,max=720"`
	Facilities     []string       `json:"facilities" validate:"omitempty,max=50,dive,notblank,max=100"`
	OperatingHours OperatingHours `json:"operatingHours" validate:"omitempty,max=7,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
	Images         []string       `json:"images" validate:"omitempty,max=20,dive,url"`
}

// UpdateVenueRequest changes only the supplied fields
type UpdateVenueRequest struct {
	Name           *string         `json:"name" validate:"omitempty,notblank,min=3,max=200"`
	Description    *string         `json:"description" validate:"omitempty,max=5000"`
	VenueType      *VenueType      `json:"venueType" validate:"omitempty,oneof=banquet_hall conference_hall outdoor rooftop restaurant community_center"`
	Address        *string         `json:"address" validate:"omitempty,notblank,max=500"`
	City           *string         `json:"city" validate:"omitempty,notblank,max=100"`
	Capacity       *int            `json:"capacity" validate:"omitempty,min=1,max=100000"`
	PricingUnit    *PricingUnit    `json:"pricingUnit" validate:"omitempty,oneof=hourly daily"`
	PricePerHour   *float64        `json:"pricePerHour" validate:"omitempty,gte=0"`
	PricePerDay    *float64        `json:"pricePerDay" validate:"omitempty,gte=0"`
	MinimumHours   *int            `json:"minimumHours" validate:"omitempty,min=1,max=720"`
	Facilities     *[]string       `json:"facilities" validate:"omitempty,max=50,dive,notblank,max=100"`
	OperatingHours *OperatingHours `json:"operatingHours" validate:"omitempty,max=7,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
	Images         *[]string       `json:"images" validate:"omitempty,max=20,dive,url"`
	IsActive       *bool           `json:"isActive"`
}
