package pyroscope

import (
	"context"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"go.uber.org/fx"
)

// Service owns the continuous profiler. It is inert when profiling is
// disabled in config.
type Service struct {
	cfg      *config.PyroscopeConfig
	logger   *logger.Logger
	debug    bool
	profiler *pyroscope.Profiler
}

// Module provides fx options for Pyroscope
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewPyroscopeService),
		fx.Invoke(RegisterHooks),
	)
}

// NewPyroscopeService creates a new Pyroscope service
func NewPyroscopeService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    &cfg.Pyroscope,
		logger: logger,
		debug:  cfg.Logging.Level == "debug",
	}
}

// RegisterHooks starts the profiler with the app and stops it on shutdown
func RegisterHooks(lc fx.Lifecycle, svc *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start()
		},
		OnStop: func(ctx context.Context) error {
			return svc.Stop()
		},
	})
}

func (s *Service) Start() error {
	if !s.IsEnabled() {
		s.logger.Info("Pyroscope profiling is disabled")
		return nil
	}

	profileTypes := s.profileTypes()
	pyroscopeConfig := pyroscope.Config{
		ApplicationName: s.cfg.ApplicationName,
		ServerAddress:   s.cfg.ServerAddress,
		ProfileTypes:    profileTypes,
		SampleRate:      s.cfg.SampleRate,
		DisableGCRuns:   s.cfg.DisableGCRuns,
		Logger:          s,
	}
	if s.cfg.BasicAuthUser != "" {
		pyroscopeConfig.BasicAuthUser = s.cfg.BasicAuthUser
		pyroscopeConfig.BasicAuthPassword = s.cfg.BasicAuthPass
	}

	profiler, err := pyroscope.Start(pyroscopeConfig)
	if err != nil {
		s.logger.Errorw("failed to start pyroscope", "error", err)
		return err
	}
	s.profiler = profiler

	s.logger.Infow("pyroscope profiling started",
		"application_name", s.cfg.ApplicationName,
		"server_address", s.cfg.ServerAddress,
		"has_basic_auth", s.cfg.BasicAuthUser != "",
		"profile_types", profileTypes,
		"sample_rate", s.cfg.SampleRate,
	)
	return nil
}

// Stop flushes pending profiles
func (s *Service) Stop() error {
	if s.profiler == nil {
		return nil
	}
	s.logger.Info("stopping pyroscope profiling")
	err := s.profiler.Stop()
	s.profiler = nil
	return err
}

// IsEnabled returns whether Pyroscope profiling is enabled
func (s *Service) IsEnabled() bool {
	return s.cfg.Enabled
}

// Debugf, Infof and Errorf satisfy pyroscope.Logger
func (s *Service) Debugf(format string, args ...interface{}) {
	if s.debug {
		s.logger.Debugf("[pyroscope] "+format, args...)
	}
}

func (s *Service) Infof(format string, args ...interface{}) {
	s.logger.Infof("[pyroscope] "+format, args...)
}

func (s *Service) Errorf(format string, args ...interface{}) {
	s.logger.Errorf("[pyroscope] "+format, args...)
}

var profileTypesByName = map[string]pyroscope.ProfileType{
	"cpu":            pyroscope.ProfileCPU,
	"inuse_objects":  pyroscope.ProfileInuseObjects,
	"alloc_objects":  pyroscope.ProfileAllocObjects,
	"inuse_space":    pyroscope.ProfileInuseSpace,
	"alloc_space":    pyroscope.ProfileAllocSpace,
	"goroutines":     pyroscope.ProfileGoroutines,
	"mutex_count":    pyroscope.ProfileMutexCount,
	"mutex_duration": pyroscope.ProfileMutexDuration,
	"block_count":    pyroscope.ProfileBlockCount,
	"block_duration": pyroscope.ProfileBlockDuration,
}

// profileTypes maps configured names to profile types, defaulting to CPU
// and memory profiles when none are configured
func (s *Service) profileTypes() []pyroscope.ProfileType {
	if len(s.cfg.ProfileTypes) == 0 {
		return []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
		}
	}

	profileTypes := make([]pyroscope.ProfileType, 0, len(s.cfg.ProfileTypes))
	for _, name := range s.cfg.ProfileTypes {
		profileType, ok := profileTypesByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			s.logger.Warnw("unknown profile type", "type", name)
			continue
		}
		profileTypes = append(profileTypes, profileType)
	}
	return profileTypes
}

// TagWrapper adds profiling labels to a function execution
func (s *Service) TagWrapper(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	if !s.IsEnabled() {
		fn(ctx)
		return
	}

	labelPairs := make([]string, 0, len(labels)*2)
	for key, value := range labels {
		labelPairs = append(labelPairs, key, value)
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(labelPairs...), fn)
}
