package domain

import "time"

type SyncStatus string

const (
	StatusSucceeded SyncStatus = "SUCCEEDED"
	StatusFailed    SyncStatus = "FAILED"
	StatusSkipped   SyncStatus = "SKIPPED"
)

type SyncResult struct {
	Status     SyncStatus
	FlowName   string
	Identifier ResourceIdentifier
	Kind       ResourceKind
	PhysicalID string
	Duration   time.Duration
	Error      error
}
