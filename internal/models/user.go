package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity recipes and reviews are attributed to. Credentials are
// held by the identity provider that issues bearer tokens.
type User struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"size:50;not null" json:"username"`
}
