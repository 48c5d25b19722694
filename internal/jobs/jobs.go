package jobs

import (
	"context"
	"fmt"
	"time"

	"boxoffice/internal/seats"
	"boxoffice/internal/shared/constants"
	"boxoffice/pkg/logger"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// JobProcessor runs the background jobs of the seat inventory
type JobProcessor struct {
	sweeper   seats.Sweeper
	config    *JobConfig
	scheduler gocron.Scheduler
	reaperJob gocron.Job
	log       *logger.Logger
}

// JobConfig contains configuration for background jobs
type JobConfig struct {
	ReaperInterval time.Duration
	StopTimeout    time.Duration
	// Locker serializes sweeps across instances; nil runs unlocked
	Locker gocron.Locker
	Clock  clockwork.Clock
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		ReaperInterval: time.Minute,
		StopTimeout:    30 * time.Second,
	}
}

// NewJobProcessor schedules the hold reaper. It runs once on Start and then
// every ReaperInterval; a run still going when the next is due pushes it back.
func NewJobProcessor(sweeper seats.Sweeper, config *JobConfig) (*JobProcessor, error) {
	if config == nil {
		config = DefaultJobConfig()
	}
	if config.ReaperInterval <= 0 {
		config.ReaperInterval = time.Minute
	}

	jp := &JobProcessor{
		sweeper: sweeper,
		config:  config,
		log:     logger.GetDefault().WithComponent("jobs"),
	}

	options := []gocron.SchedulerOption{
		gocron.WithLogger(jp.log),
		gocron.WithStopTimeout(config.StopTimeout),
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithError(func(_ uuid.UUID, jobName string, err error) {
					jp.log.WithError(err).Error("Background job failed", "job", jobName)
				}),
			),
		),
	}
	if config.Locker != nil {
		options = append(options, gocron.WithDistributedLocker(config.Locker))
	}
	if config.Clock != nil {
		options = append(options, gocron.WithClock(config.Clock))
	}

	scheduler, err := gocron.NewScheduler(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	jp.scheduler = scheduler

	jp.reaperJob, err = scheduler.NewJob(
		gocron.DurationJob(config.ReaperInterval),
		gocron.NewTask(jp.reapExpiredHolds),
		gocron.WithName(constants.JOB_NAME_HOLD_REAPER),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule hold reaper: %w", err)
	}

	return jp, nil
}

// Start starts all background jobs
func (jp *JobProcessor) Start() {
	jp.scheduler.Start()
	jp.log.Info("Background jobs started", "reaper_interval", jp.config.ReaperInterval.String())
}

// Stop waits for running jobs up to the stop timeout
func (jp *JobProcessor) Stop() error {
	if err := jp.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	jp.log.Info("Background jobs stopped")
	return nil
}

func (jp *JobProcessor) reapExpiredHolds(ctx context.Context) error {
	_, err := jp.sweeper.Sweep(ctx)
	return err
}

// GetJobStatus returns the status of background jobs
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	status := map[string]interface{}{
		"reaper_interval": jp.config.ReaperInterval.String(),
		"distributed":     jp.config.Locker != nil,
		"reaper":          jp.sweeper.Stats(),
	}
	if next, err := jp.reaperJob.NextRun(); err == nil {
		status["next_run"] = next
	}
	return status
}
