// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/google/uuid"
)

// User is the sole entity of the account subsystem, representing one registered
// person. PasswordHash is the bcrypt hash of the login password; it must never
// appear in any outward-facing representation of the user.
type User struct {
	ID            uuid.UUID // The opaque, generated identifier for the user.
	FirstName     string
	LastName      string
	Age           string
	Gender        string
	ContactNumber string
	Email         string // Login identifier; globally unique across all users.
	Username      string // Display handle; globally unique across all users.
	PasswordHash  string // bcrypt hash, recomputed whenever the plaintext password changes.
	Address       string
	Role          Role // Stored role; defaults to RoleEditor on creation.
	IsActive      bool // Gates login only; deactivation is not deletion.
}
