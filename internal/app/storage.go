package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/chess-ratings/internal/config"
	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	"github.com/riskibarqy/chess-ratings/internal/infrastructure/database"
	cacherepo "github.com/riskibarqy/chess-ratings/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/chess-ratings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/chess-ratings/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/chess-ratings/internal/platform/cache"
	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
)

type repositories struct {
	players     player.Repository
	tournaments tournament.Repository
	results     result.Repository
	close       func() error
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger, observer basecache.Observer) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := database.Open(ctx, database.Options{
			URL:              cfg.DBURL,
			BinaryParameters: cfg.DBBinaryParameters,
			MaxOpenConns:     20,
			MaxIdleConns:     10,
			ConnMaxLifetime:  30 * time.Minute,
		})
		if err != nil {
			return repositories{}, fmt.Errorf("open database: %w", err)
		}
		repos = repositories{
			players:     postgres.NewPlayerRepository(db),
			tournaments: postgres.NewTournamentRepository(db),
			results:     postgres.NewResultRepository(db),
			close:       db.Close,
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "database", database.DBName(cfg.DBURL))
	default:
		repos = repositories{
			players:     memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedRosters()),
			tournaments: memory.NewTournamentRepository(memory.SeedTournaments()),
			results:     memory.NewResultRepository(memory.SeedGames()),
			close:       func() error { return nil },
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if !cfg.CacheEnabled {
		return repos, nil
	}

	store := basecache.NewStore(cfg.CacheTTL)
	if observer != nil {
		store.WithObserver(observer)
	}
	repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, store)
	repos.results = cacherepo.NewResultRepository(repos.results, store)
	logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())

	return repos, nil
}
