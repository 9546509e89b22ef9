package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
// The unique indexes on email and username are the authoritative uniqueness
// enforcement; index names are stable because constraint classification keys on them.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	Age           string    `gorm:"type:varchar(20);not null"`
	Gender        string    `gorm:"type:varchar(20);not null"`
	ContactNumber string    `gorm:"type:varchar(50);not null"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex:uni_users_email"`
	Username      string    `gorm:"type:varchar(100);not null;uniqueIndex:uni_users_username"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Address       string    `gorm:"type:text;not null"`
	Role          string    `gorm:"type:varchar(20);not null;default:editor"`
	IsActive      bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
