package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"livestock-records/internal/lifecycle"
)

// DigestSource calcula los conteos del semáforo del día (vaccines.Service).
type DigestSource interface {
	Digest(ctx context.Context) (map[lifecycle.Urgency]int, error)
}

// DigestSink publica el último resumen (metrics.Metrics).
type DigestSink interface {
	SetDigest(counts map[lifecycle.Urgency]int)
}

// Scheduler corre el resumen diario de vacunas. No envía notificaciones.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	source   DigestSource
	sink     DigestSink
	timeout  time.Duration
	logger   *zap.Logger
}

func NewScheduler(schedule string, loc *time.Location, source DigestSource, sink DigestSink, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		source:   source,
		sink:     sink,
		timeout:  2 * time.Minute,
		logger:   logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDigest); err != nil {
		return fmt.Errorf("failed to schedule vaccination digest: %w", err)
	}
	s.logger.Info("starting scheduler", zap.String("cron", s.schedule))
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine un resumen en curso.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("failed to compute vaccination digest", zap.Error(err))
	}
}

// RunOnce calcula y publica un resumen; es lo que ejecuta cada disparo del cron.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	counts, err := s.source.Digest(ctx)
	if err != nil {
		return err
	}
	if s.sink != nil {
		s.sink.SetDigest(counts)
	}

	s.logger.Info("vaccination digest",
		zap.Int("urgent", counts[lifecycle.UrgencyUrgent]),
		zap.Int("upcoming", counts[lifecycle.UrgencyUpcoming]),
		zap.Int("on_time", counts[lifecycle.UrgencyOnTime]),
		zap.Int("undated", counts[lifecycle.UrgencyUndated]),
	)
	if n := counts[lifecycle.UrgencyUrgent]; n > 0 {
		s.logger.Warn("vaccinations overdue or due today", zap.Int("count", n))
	}
	return nil
}
