package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Profile struct {
	bun.BaseModel `bun:"table:profiles"`

	ID        string    `bun:"id,pk" json:"id"`
	Email     string    `bun:"email,unique,notnull" json:"email"`
	FullName  string    `bun:"full_name,notnull" json:"full_name"`
	Phone     string    `bun:"phone,nullzero" json:"phone,omitempty"`
	Role      Role      `bun:"role,notnull" json:"role"`
	Company   string    `bun:"company,nullzero" json:"company,omitempty"`
	Skills    []string  `bun:"skills,array" json:"skills,omitempty"`
	AvatarURL string    `bun:"avatar_url,nullzero" json:"avatar_url,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}
