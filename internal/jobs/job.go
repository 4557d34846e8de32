package jobs

import "context"

// Summary is the JSON body a job trigger returns.
type Summary map[string]interface{}

// Job is a scheduled task that can also be triggered manually over HTTP.
type Job interface {
	Name() string
	// Schedule is a cron expression; empty means on-demand only.
	Schedule() string
	Execute(ctx context.Context) (Summary, error)
}
