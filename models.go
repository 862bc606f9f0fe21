package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Principal is an authenticated account as the rest of the application
// sees it. It is constructed at the store boundary and handed to the
// downstream handler for the lifetime of one request.
type Principal struct {
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	PasswordHash string `json:"-"`
	Disabled     bool   `json:"disabled,omitempty"`
}

// Active reports whether the account may authenticate.
func (p *Principal) Active() bool {
	return p != nil && !p.Disabled
}

// User is the persisted account record. The resolver only ever reads it;
// writes belong to the registration and seeding paths.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username     string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email        string     `bun:"email" json:"email,omitempty"`
	FullName     string     `bun:"full_name" json:"full_name,omitempty"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Disabled     bool       `bun:"disabled,notnull" json:"disabled,omitempty"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Principal converts the stored record into the request-scoped view the
// core operates on.
func (u *User) Principal() *Principal {
	if u == nil {
		return nil
	}
	return &Principal{
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Disabled:     u.Disabled,
	}
}
