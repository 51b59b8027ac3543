package model

import "time"

// Roles mirror the two user types in the product: planters track their own
// goals, mentors additionally review and evaluate planters' goals.
const (
	RolePlanter = "planter"
	RoleMentor  = "mentor"
)

type Profile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Surname   string    `db:"surname" json:"surname"`
	Role      string    `db:"role" json:"role"`
	Birthday  string    `db:"birthday" json:"birthday"` // YYYY-MM-DD, optional
	Career    string    `db:"career" json:"career"`
	Bio       string    `db:"bio" json:"bio"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Computed fields (not in database)
	AvatarURL string `db:"-" json:"avatarUrl,omitempty"`
}

func (p *Profile) IsMentor() bool {
	return p.Role == RoleMentor
}
