package consumers

import (
	"encoding/json"
	"log"

	"spbu-service/internal/models"

	"gorm.io/gorm"
)

// ActivityLogDTO is the payload carried by an activity-log task.
type ActivityLogDTO struct {
	UserEmail string                 `json:"user_email"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
}

type ActivityWriter struct {
	DB *gorm.DB
}

func NewActivityWriter(db *gorm.DB) *ActivityWriter {
	return &ActivityWriter{DB: db}
}

// WriteActivityLog appends one audit row. Failures are logged locally and
// dropped; the audit trail is best-effort and must never surface an error
// back into the flow it records.
func (w *ActivityWriter) WriteActivityLog(p ActivityLogDTO) {
	email := p.UserEmail
	if email == "" {
		email = "anonymous"
	}

	details := "{}"
	if len(p.Details) > 0 {
		if raw, err := json.Marshal(p.Details); err == nil {
			details = string(raw)
		} else {
			log.Printf("Error encoding activity details (%s): %v", p.Action, err)
		}
	}

	entry := models.ActivityLog{
		UserEmail: email,
		Action:    p.Action,
		Details:   details,
	}
	if err := w.DB.Create(&entry).Error; err != nil {
		log.Printf("Error writing activity log (%s): %v", p.Action, err)
	}
}
