package organizers

import (
	"time"

	"github.com/google/uuid"
)

// Organizer is a staff account. Organizers manage the venue and meal catalog;
// the admin role additionally reads analytics and moderates events.
type Organizer struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password    string    `json:"-" gorm:"not null"`
	Phone       string    `json:"phone" gorm:"size:20"`
	CompanyName string    `json:"companyName" gorm:"size:200"`
	Role        string    `json:"role" gorm:"not null;size:20;default:'organizer';check:role IN ('organizer','admin')"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
