package analyticshandler

import (
	"context"

	"crm-server/internal/domain/analytics"
	"crm-server/internal/interfaces/httpserver/responses/analyticsres"
	"crm-server/internal/utils/platformerrors"
)

type AnalyticsHandler struct {
	analytics *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc}
}

// GetSummary returns aggregate figures across the CRM
func (h *AnalyticsHandler) GetSummary(ctx context.Context) (*analyticsres.SummaryResponse, error) {
	summary, err := h.analytics.Summary(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to compute summary")
	}
	return analyticsres.NewSummaryResponse(summary), nil
}
