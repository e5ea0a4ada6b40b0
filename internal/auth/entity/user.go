package entity

import "time"

// User is an account row in the users table. username and email are unique
// among live rows; password_hash never holds the plaintext.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    *string    `db:"first_name" json:"first_name,omitempty"`
	LastName     *string    `db:"last_name" json:"last_name,omitempty"`
	Zipcode      *string    `db:"zipcode" json:"zipcode,omitempty"`
	Address1     *string    `db:"address1" json:"address1,omitempty"`
	Address2     *string    `db:"address2" json:"address2,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	IsStaff      bool       `db:"is_staff" json:"is_staff"`
	AuthNumber   *string    `db:"auth_number" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
}

// RefreshToken holds the single live refresh token for a username. Issuing a
// new one overwrites the row; no token history is kept.
type RefreshToken struct {
	Username     string    `db:"username"`
	RefreshToken string    `db:"refresh_token"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
