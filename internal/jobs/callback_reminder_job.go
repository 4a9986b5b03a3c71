package jobs

import (
	"context"
	"time"

	"github.com/brightsales/leadtrack-api/internal/domain"
	"github.com/brightsales/leadtrack-api/internal/http/middleware"
	"go.uber.org/zap"
)

// CallbackReminderJobName is the name of the callback reminder job
const CallbackReminderJobName = "callback_reminder"

// callbackScanLimit bounds a single scan so a backlog cannot flood the log
const callbackScanLimit = 500

// callbackScanTimeout bounds how long one scan may run
const callbackScanTimeout = 30 * time.Second

// DueCallbackFinder defines the lead lookup the job needs. The interface
// keeps the job from importing the repository package directly.
type DueCallbackFinder interface {
	// FindDueCallbacks returns CALL_BACK leads whose callback time has passed.
	FindDueCallbacks(ctx context.Context, limit int) ([]domain.Lead, error)
}

// CallbackReminderJob periodically scans for leads marked CALL_BACK whose
// callback time has passed and surfaces them in the log and metrics so sales
// staff see overdue follow-ups.
type CallbackReminderJob struct {
	finder DueCallbackFinder
	logger *zap.Logger
}

// NewCallbackReminderJob creates a new callback reminder job.
func NewCallbackReminderJob(finder DueCallbackFinder, logger *zap.Logger) *CallbackReminderJob {
	return &CallbackReminderJob{
		finder: finder,
		logger: logger,
	}
}

// Run executes one scan. This is called by the scheduler according to the
// cron expression.
func (j *CallbackReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), callbackScanTimeout)
	defer cancel()

	start := time.Now()

	leads, err := j.finder.FindDueCallbacks(ctx, callbackScanLimit)
	if err != nil {
		j.logger.Error("callback reminder scan failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if len(leads) == 0 {
		return
	}

	middleware.RecordCallbackRemindersDue(len(leads))

	for i := range leads {
		lead := &leads[i]
		fields := []zap.Field{
			zap.String("lead_id", lead.ID.String()),
			zap.String("lead_name", lead.Name),
		}
		if lead.CallBackTime != nil {
			fields = append(fields, zap.Time("call_back_time", *lead.CallBackTime))
		}
		if lead.Employee != nil {
			fields = append(fields, zap.String("employee", lead.Employee.Name))
		}
		j.logger.Warn("lead callback is overdue", fields...)
	}

	j.logger.Info("callback reminder scan completed",
		zap.Int("due", len(leads)),
		zap.Duration("duration", time.Since(start)))
}

// RegisterCallbackReminderJob registers the callback reminder job with the
// scheduler using the given cron expression.
func RegisterCallbackReminderJob(scheduler *Scheduler, finder DueCallbackFinder, logger *zap.Logger, cronExpr string) error {
	job := NewCallbackReminderJob(finder, logger)
	return scheduler.AddJob(CallbackReminderJobName, cronExpr, job.Run)
}
