package router

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	mem "livestock-records/internal/adapters/storage/memory"
	"livestock-records/internal/adapters/storage/mongodb"
	pg "livestock-records/internal/adapters/storage/postgres"
	"livestock-records/internal/config"
	"livestock-records/internal/domain/animals"
	"livestock-records/internal/domain/vaccines"
)

// Storage es la fuente de registros elegida por configuración.
type Storage struct {
	Driver   string
	Animals  animals.Repository
	Vaccines vaccines.Repository
	close    func(context.Context) error
}

func (s Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func MemoryStorage() Storage {
	a := mem.NewAnimalRepo()
	return Storage{
		Driver:   config.DriverMemory,
		Animals:  a,
		Vaccines: mem.NewVaccineRepo(a),
	}
}

func PostgresStorage(db *sql.DB) Storage {
	return Storage{
		Driver:   config.DriverPostgres,
		Animals:  pg.NewAnimalsRepo(db),
		Vaccines: pg.NewVaccinesRepo(db),
		close:    func(context.Context) error { return db.Close() },
	}
}

// OpenStorage conecta el driver configurado.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.Postgres.ConnString())
		if err != nil {
			return Storage{}, fmt.Errorf("failed to open postgres: %w", err)
		}
		if cfg.Storage.AutoMigrate {
			if err := pg.EnsureSchema(ctx, db); err != nil {
				_ = db.Close()
				return Storage{}, fmt.Errorf("failed to apply schema: %w", err)
			}
			logger.Info("postgres schema ensured")
		}
		logger.Info("using postgres record source")
		return PostgresStorage(db), nil

	case config.DriverMongoDB:
		store, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return Storage{}, err
		}
		logger.Info("using mongodb record source", zap.String("db", cfg.MongoDB.DBName))
		return Storage{
			Driver:   config.DriverMongoDB,
			Animals:  store.Animals(),
			Vaccines: store.Vaccines(),
			close:    store.Close,
		}, nil

	default:
		logger.Warn("using in-memory record source; data is lost on restart")
		return MemoryStorage(), nil
	}
}
