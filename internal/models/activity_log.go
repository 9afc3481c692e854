package models

import (
	"time"
)

// ActivityLog is an append-only audit row. Entries are written by the worker
// and never read back by any endpoint.
type ActivityLog struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserEmail string    `gorm:"column:user_email;size:255;not null;default:anonymous" json:"user_email"`
	Action    string    `gorm:"column:action;size:64;not null;index" json:"action"`
	Details   string    `gorm:"column:details;type:jsonb" json:"details"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
