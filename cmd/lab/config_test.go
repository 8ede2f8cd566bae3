package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labkit/internal/config"
)

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value    string
		expected Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"production", Production},
		{"", Production},
		{"staging", Production},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("LAB_ENV", tt.value)
			assert.Equal(t, tt.expected, getEnvironment())
		})
	}
}

func TestRepositoryFactory_CreateRepository(t *testing.T) {
	t.Run("testing uses memory", func(t *testing.T) {
		repo, err := NewRepositoryFactory(Testing).CreateRepository(config.NewConfig())
		require.NoError(t, err)
		defer repo.Close()

		snapshots, err := repo.ListSnapshots(context.Background())
		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})

	t.Run("production creates the database directory", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Database.Dir = t.TempDir() + "/nested"

		repo, err := NewRepositoryFactory(Production).CreateRepository(cfg)
		require.NoError(t, err)
		defer repo.Close()
		assert.FileExists(t, cfg.GetDatabasePath())
	})
}
