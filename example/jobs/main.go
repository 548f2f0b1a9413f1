// Command jobs shows how scheduled job beans registered in a scope are
// discovered and handed to a cron scheduler. The scope's pre-destroy
// action stops the scheduler, so a SIGINT/SIGTERM shuts everything down
// through the scope's shutdown hook.
package main

import (
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"

	inject "github.com/agentgt/avaje-inject"
)

// Job is a scheduled task bean. Schedule returns a cron expression.
type Job interface {
	Name() string
	Schedule() string
	Run()
}

type heartbeatJob struct {
	logger *slog.Logger
}

func (j *heartbeatJob) Name() string     { return "heartbeat" }
func (j *heartbeatJob) Schedule() string { return "@every 10s" }
func (j *heartbeatJob) Run()             { j.logger.Info("heartbeat") }

type cleanupJob struct {
	logger *slog.Logger
	dir    string
}

func (j *cleanupJob) Name() string     { return "cleanup" }
func (j *cleanupJob) Schedule() string { return "@hourly" }
func (j *cleanupJob) Run() {
	j.logger.Info("cleaning temp files", "dir", j.dir)
	// removal failures surface on the next run
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		j.logger.Error("cleanup failed", "error", err)
		return
	}
	j.logger.Info("cleanup done", "entries", len(entries))
}

func main() {
	logger := slog.Default()
	scheduler := cron.New()
	done := make(chan struct{})

	jobType := inject.TypeOf[Job]()
	builder := inject.NewBeanScopeBuilder(
		inject.WithLogger(inject.NewSlogLogger(logger)),
		inject.WithShutdownHook(),
	).
		Provide(&heartbeatJob{logger: logger}, inject.As(jobType)).
		Provide(&cleanupJob{logger: logger, dir: os.TempDir()}, inject.As(jobType)).
		PreDestroy(func() error {
			scheduler.Stop()
			close(done)
			return nil
		})

	scope, err := builder.Build()
	if err != nil {
		logger.Error("failed to build scope", "error", err)
		os.Exit(1)
	}

	for _, job := range inject.List[Job](scope) {
		if _, err := scheduler.AddFunc(job.Schedule(), job.Run); err != nil {
			logger.Error("failed to schedule job", "job", job.Name(), "error", err)
			scope.Close()
			os.Exit(1)
		}
		logger.Info("scheduled", "job", job.Name(), "schedule", job.Schedule())
	}
	scheduler.Start()

	// the shutdown hook closes the scope on SIGINT/SIGTERM, which stops
	// the scheduler through the pre-destroy action
	<-done
	logger.Info("scheduler stopped")
}
