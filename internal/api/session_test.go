package api

import (
	"context"
	"testing"
	"time"

	"labkit/internal/config"
	"labkit/internal/fetch"
	"labkit/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_UsesConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Cart.TaxRate = 0
	cfg.Calculator.HistoryLimit = 2
	cfg.Portal.SaveDelay = 0
	cfg.Portal.SaveFailureRate = 0

	session := NewSession(cfg, nil)

	assert.Same(t, cfg, session.Config())

	_, err := session.Cart.AddToCart(8)
	require.NoError(t, err)
	assert.Equal(t, 249.0, session.Cart.Totals().Total)

	for _, b := range []string{"1", "2", "3"} {
		_, err := session.Calculator.Run("1", b, "add")
		require.NoError(t, err)
	}
	assert.Len(t, session.Calculator.History(), 2)

	receipt, err := session.Portal.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Saved 3 students & 4 courses", receipt.Notice)
}

func TestNewSession_NilConfigUsesDefaults(t *testing.T) {
	session := NewSession(nil, nil)

	assert.Equal(t, config.NewConfig().Cart.TaxRate, session.Config().Cart.TaxRate)
	assert.Equal(t, services.StateIdle, session.Loader.View().State)
	assert.Equal(t, 5, session.Catalog.View("", "").Total)
}

func TestNewSession_ExtraOptionsReachLoader(t *testing.T) {
	clock := fetch.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := config.NewConfig()
	session := NewSession(cfg, nil, fetch.WithClock(clock), fetch.WithRand(func() float64 { return 0 }))

	future := session.Loader.Start(context.Background())
	clock.BlockUntil(1)
	clock.Advance(cfg.Fetch.MinDelay)

	view, err := future.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.50s", view.Elapsed)
}
