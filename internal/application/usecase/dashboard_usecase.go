package usecase

import (
	"context"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

// DashboardUseCase analítica agregada del tablero de administración. El
// documento lo arma el remote store; el hub solo lo expone tras la sesión.
type DashboardUseCase struct {
	analytics ports.AnalyticsRemote
	log       *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analytics ports.AnalyticsRemote, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{analytics: analytics, log: log}
}

// Fetch trae el documento de analítica del tablero.
func (uc *DashboardUseCase) Fetch(ctx context.Context, token string) (*dto.DashboardResponse, error) {
	doc, err := uc.analytics.FetchAnalytics(ctx, token)
	if err != nil {
		uc.log.Warn().Err(err).Msg("analítica del tablero no disponible")
		return nil, err
	}
	return doc, nil
}
