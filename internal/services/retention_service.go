package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"spbu-service/internal/models"

	"gorm.io/gorm"
)

// Audit rows are kept for six months.
const retentionMonths = 6

type RetentionService struct {
	DB *gorm.DB
}

func NewRetentionService(db *gorm.DB) *RetentionService {
	return &RetentionService{DB: db}
}

// PurgeActivityLogs deletes audit rows past the retention horizon. The sink
// is a pure write target, so old entries can go without anything reading
// them first.
func (s *RetentionService) PurgeActivityLogs() {
	cutoff := time.Now().AddDate(0, -retentionMonths, 0)

	res := s.DB.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if res.Error != nil {
		log.Printf("Error purging activity logs: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Purged %d activity log entries older than %d months", res.RowsAffected, retentionMonths)
	}
}

// StartScheduler runs the purge daily at midnight.
func (s *RetentionService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Println("Running scheduled activity log purge...")
		s.PurgeActivityLogs()
	})
	if err != nil {
		log.Printf("Error scheduling purge task: %v", err)
		return
	}
	c.Start()
	log.Println("Activity Log Retention Scheduler started (Daily at 00:00)")
}
