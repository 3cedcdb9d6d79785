package config

import (
	"context"
	"fmt"
	"os"

	"taskboard/internal/repository"
	"taskboard/internal/repository/mongo"
	"taskboard/internal/repository/sqlite"
)

// CreateStore opens the task store selected by the configuration
func CreateStore(ctx context.Context, config *Config) (repository.Store, error) {
	switch config.Database.Driver {
	case DriverMongo:
		store, err := mongo.New(ctx, config.Database.MongoURI, config.Database.MongoDatabase,
			mongo.WithQueryTimeout(config.GetQueryTimeout()))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return store, nil

	case DriverSQLite:
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		store, err := sqlite.New(ctx, config.GetDatabasePath(),
			sqlite.WithQueryTimeout(config.GetQueryTimeout()))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil

	default:
		return nil, &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unknown driver %q", config.Database.Driver)}
	}
}
