package handlers

import (
	"context"

	"github.com/sekolahkita/sipinjam/internal/server/dto"
	"github.com/sekolahkita/sipinjam/internal/storage"
)

// StatsHandler handles the dashboard statistics endpoint.
type StatsHandler struct {
	svc *storage.StatsService
}

// NewStatsHandler creates a new statistics handler.
func NewStatsHandler(svc *storage.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Stats returns the dashboard counters.
func (h *StatsHandler) Stats(ctx context.Context, req *dto.EmptyRequest) (*storage.DashboardStats, error) {
	stats, err := h.svc.Stats()
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health handles health check requests.
func (h *HealthHandler) Health(ctx context.Context, req *dto.EmptyRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{Status: "ok", Version: h.version}, nil
}
