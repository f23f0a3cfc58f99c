package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type config struct {
	name  string
	count int
}

func TestApply(t *testing.T) {
	cfg := &config{}

	err := Apply(cfg,
		NoError(func(c *config) { c.name = "a" }),
		New(func(c *config) error {
			c.count = 2
			return nil
		}),
	)
	require.NoError(t, err)
	require.Equal(t, "a", cfg.name)
	require.Equal(t, 2, cfg.count)
}

func TestApplyStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	cfg := &config{}

	err := Apply(cfg,
		New(func(*config) error { return boom }),
		NoError(func(c *config) { c.count = 9 }),
	)
	require.ErrorIs(t, err, boom)
	require.Zero(t, cfg.count)
}
