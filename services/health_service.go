package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tabsplit/tabsplit-backend/internal/store/postgres"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

type HealthService struct {
	db      postgres.DB
	version string
	log     *zap.SugaredLogger
}

func NewHealthService(db postgres.DB, version string) *HealthService {
	return &HealthService{
		db:      db,
		version: version,
		log:     logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	dbStatus := h.checkDatabase(ctx)
	components["database"] = dbStatus
	if dbStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}

	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}
