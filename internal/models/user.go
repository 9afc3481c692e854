package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleOperator = "operator"
	RoleManajer  = "manajer"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	HashedPassword []byte    `gorm:"column:hashed_password;not null" json:"-"`
	Role           string    `gorm:"column:role;size:20;not null;default:operator" json:"role"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
