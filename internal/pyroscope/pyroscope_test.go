package pyroscope

import (
	"context"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/hanahub/ab-discount-app/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileTypes(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Pyroscope.ProfileTypes = []string{"CPU", " inuse_space ", "bogus"}

	svc := NewPyroscopeService(cfg, logger.NewNoop())
	assert.Equal(t,
		[]pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileInuseSpace},
		svc.profileTypes(),
	)

	cfg.Pyroscope.ProfileTypes = nil
	assert.Len(t, svc.profileTypes(), 6)
}

func TestDisabledService(t *testing.T) {
	cfg := config.GetDefaultConfig()
	svc := NewPyroscopeService(cfg, logger.NewNoop())

	require.NoError(t, svc.Start())
	assert.False(t, svc.IsEnabled())

	called := false
	svc.TagWrapper(context.Background(), map[string]string{"k": "v"}, func(context.Context) {
		called = true
	})
	assert.True(t, called)
	assert.NoError(t, svc.Stop())
}
