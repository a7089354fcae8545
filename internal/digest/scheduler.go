package digest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sitewatch/sitewatch/internal/config"
	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"gorm.io/gorm"
)

// cronParser is the parser config validation uses.
var cronParser = config.ScheduleParser

// NextRun returns the first fire time of expr after from.
func NextRun(expr string, from time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("digest: parse schedule %q: %w", expr, err)
	}
	return sched.Next(from), nil
}

// Scheduler computes and posts the project digest on a cron schedule.
type Scheduler struct {
	DB       *gorm.DB
	Engine   *progress.Engine
	Poster   Poster
	Project  string
	Schedule string
}

// RunOnce builds the current digest, posts it and records the attempt.
func (s *Scheduler) RunOnce(ctx context.Context) (Digest, error) {
	snaps, err := report.LoadSnapshots(s.DB, progress.Project())
	if err != nil {
		return Digest{}, err
	}
	d := Build(s.Project, s.Engine.Scope(snaps, progress.Project()), s.Engine.Apartments(snaps))

	ts, postErr := s.Poster.Post(ctx, d)
	run := models.DigestRun{
		Channel:         s.Poster.Channel(),
		MessageTS:       ts,
		OverallProgress: d.OverallProgress,
	}
	if postErr != nil {
		run.Error = postErr.Error()
	}
	if err := s.DB.Create(&run).Error; err != nil {
		log.Printf("digest: record run: %v", err)
	}
	if postErr != nil {
		return d, postErr
	}
	return d, nil
}

// Run posts the digest on every schedule tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithParser(cronParser))
	_, err := c.AddFunc(s.Schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			log.Printf("digest: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("digest: schedule %q: %w", s.Schedule, err)
	}

	c.Start()
	log.Printf("digest: scheduled %q", s.Schedule)
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// LastRuns returns the most recent digest attempts, newest first.
func LastRuns(db *gorm.DB, limit int) ([]models.DigestRun, error) {
	var runs []models.DigestRun
	if err := db.Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("digest: list runs: %w", err)
	}
	return runs, nil
}
