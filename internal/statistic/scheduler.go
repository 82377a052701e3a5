package statistic

import (
	"github.com/roylee0704/gron"
	"grailhunter/internal/providers"
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/services"
	"grailhunter/internal/statistic/interfaces"
	"grailhunter/internal/structures"
	"sync"
	"time"
)

const (
	defaultSaveInterval      = time.Minute
	defaultAggregateInterval = 10 * time.Second
	defaultSweepInterval     = time.Minute
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.UsageServiceInterface
	fileManager *FileManager
	limiter     *ratelimit.Limiter
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(durationOr(s.config.Persistence.SaveInterval, defaultSaveInterval)), func() {
		if err := s.Persist(); err != nil {
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted usage to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(durationOr(s.config.Stats.AggregateInterval, defaultAggregateInterval)), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		pending := s.service.GetBufferSize()
		s.service.AggregateStats()
		s.logger.Debugf(providers.TypeApp, "Aggregated %d limiter decisions", pending)
	})

	if s.limiter != nil {
		s.cron.AddFunc(gron.Every(durationOr(s.config.RateLimit.SweepInterval, defaultSweepInterval)), func() {
			if removed := s.limiter.Sweep(); removed > 0 {
				s.logger.Debugf(providers.TypeApp, "Swept %d idle rate limit keys", removed)
			}
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	service services.UsageServiceInterface,
	fileManager *FileManager,
	limiter *ratelimit.Limiter,
	metrics providers.MetricsProviderInterface,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		limiter:     limiter,
		metrics:     metrics,
	}
}
