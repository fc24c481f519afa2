package config_test

import (
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/cli/config"
)

func TestRepository_Configure(t *testing.T) {
	t.Run("memory backend by default", func(t *testing.T) {
		var r config.Repository
		cmd := newTestCommand(r.Flags(), func() {
			repo, err := r.Configure(t.Context())
			gt.NoError(t, err).Required()
			gt.NoError(t, repo.Close())
		})
		gt.NoError(t, cmd.Run(t.Context(), []string{"test"}))
		gt.Value(t, r.Backend()).Equal("memory")
	})

	t.Run("file backend", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cells.json")
		var r config.Repository
		cmd := newTestCommand(r.Flags(), func() {
			repo, err := r.Configure(t.Context())
			gt.NoError(t, err).Required()
			gt.NoError(t, repo.Close())
		})
		gt.NoError(t, cmd.Run(t.Context(), []string{
			"test", "--repository-backend", "file", "--repository-path", path,
		}))
	})

	t.Run("file backend requires path", func(t *testing.T) {
		var r config.Repository
		cmd := newTestCommand(r.Flags(), func() {
			_, err := r.Configure(t.Context())
			gt.Error(t, err).Is(config.ErrInvalidConfig)
		})
		gt.NoError(t, cmd.Run(t.Context(), []string{"test", "--repository-backend", "file"}))
	})

	t.Run("firestore backend requires project", func(t *testing.T) {
		var r config.Repository
		cmd := newTestCommand(r.Flags(), func() {
			_, err := r.Configure(t.Context())
			gt.Error(t, err).Is(config.ErrInvalidConfig)
		})
		gt.NoError(t, cmd.Run(t.Context(), []string{"test", "--repository-backend", "firestore"}))
	})

	t.Run("unknown backend", func(t *testing.T) {
		var r config.Repository
		cmd := newTestCommand(r.Flags(), func() {
			_, err := r.Configure(t.Context())
			gt.Error(t, err).Is(config.ErrInvalidConfig)
		})
		gt.NoError(t, cmd.Run(t.Context(), []string{"test", "--repository-backend", "postgres"}))
	})
}
