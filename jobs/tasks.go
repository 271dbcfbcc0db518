package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup pre-populates the dashboard stats cache.
	TaskDashboardWarmup = "dashboard:warmup"
	// TaskLeadFollowupScan surfaces open leads whose follow-up date has passed.
	TaskLeadFollowupScan = "leads:followup_scan"
)

// DashboardWarmupPayload selects which periods to warm. Empty means the
// standard set (weekly, monthly, ytd).
type DashboardWarmupPayload struct {
	Periods []string `json:"periods,omitempty"`
}

// NewDashboardWarmupTask constructs an Asynq task for the warmup handler.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}

// LeadFollowupScanPayload is currently empty; the scan always covers every
// open lead that is due.
type LeadFollowupScanPayload struct{}

// NewLeadFollowupScanTask constructs an Asynq task for the follow-up scan.
func NewLeadFollowupScanTask() (*asynq.Task, error) {
	data, err := json.Marshal(LeadFollowupScanPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadFollowupScan, data), nil
}
