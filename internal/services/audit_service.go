package services

import (
	"log"

	"spbu-service/internal/consumers"
	"spbu-service/internal/worker"

	"github.com/hibiken/asynq"
)

// Audit actions emitted by the primary flows.
const (
	ActionLoginSuccess      = "LOGIN_SUCCESS"
	ActionLogout            = "LOGOUT"
	ActionAccessDenied      = "ACCESS_DENIED"
	ActionCheckPlateFailed  = "CHECK_PLATE_FAILED"
	ActionCreateTransaction = "CREATE_TRANSACTION"
	ActionInsertFailed      = "TRANSACTION_INSERT_FAILED"
	ActionGenerateReport    = "GENERATE_REPORT"
	ActionExportCSV         = "EXPORT_CSV"
)

// AuditService dispatches activity-log entries onto the task queue. Writes
// are strictly fire-and-forget: enqueue errors go to the local log and are
// swallowed, so a slow or failing audit sink can never delay or fail the
// user-facing action it records.
type AuditService struct {
	Client *asynq.Client
}

func NewAuditService(client *asynq.Client) *AuditService {
	return &AuditService{Client: client}
}

func (s *AuditService) Log(userEmail, action string, details map[string]interface{}) {
	if s == nil || s.Client == nil {
		return
	}
	if userEmail == "" {
		userEmail = "anonymous"
	}

	task, err := worker.NewActivityLogTask(consumers.ActivityLogDTO{
		UserEmail: userEmail,
		Action:    action,
		Details:   details,
	})
	if err != nil {
		log.Printf("Error building activity log task (%s): %v", action, err)
		return
	}
	if _, err := s.Client.Enqueue(task); err != nil {
		log.Printf("Error enqueueing activity log (%s): %v", action, err)
	}
}
