package users

import (
	"time"

	"github.com/google/uuid"
)

// User is a customer account. Customers book venues and pay for events.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Phone     string    `json:"phone" gorm:"size:20"`
	Address   string    `json:"address" gorm:"size:500"`
	Role      string    `json:"role" gorm:"not null;size:20;default:'customer'"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate holds the editable profile fields; nil leaves a field unchanged
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

// Filter narrows the admin user listing
type Filter struct {
	IsActive *bool
}
