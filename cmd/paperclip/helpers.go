package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
	"github.com/kiltahuone/paperclip/internal/service"
	"github.com/kiltahuone/paperclip/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the configured database and applies migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/paperclip/paperclip.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// expandPath expands ~ and environment variables in a path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// parseEntityRef parses a "type/id" argument into an entity ref.
func parseEntityRef(arg string) (model.EntityRef, error) {
	parts := strings.SplitN(arg, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return model.EntityRef{}, common.NewUserError(
			fmt.Sprintf("expected type/id, got %q", arg), common.ErrInvalidEntityRef)
	}

	ref := model.EntityRef{Type: model.EntityType(parts[0]), ID: parts[1]}
	if !ref.Type.Valid() {
		return model.EntityRef{}, common.NewUserError(
			fmt.Sprintf("unknown entity type %q", parts[0]), common.ErrInvalidEntityRef)
	}

	return ref, nil
}
