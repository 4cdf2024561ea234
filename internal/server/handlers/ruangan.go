package handlers

import (
	"context"

	"github.com/sekolahkita/sipinjam/internal/server/dto"
	"github.com/sekolahkita/sipinjam/internal/storage"
)

// RuanganHandler handles room endpoints.
type RuanganHandler struct {
	svc *storage.RuanganService
}

// NewRuanganHandler creates a new room handler.
func NewRuanganHandler(svc *storage.RuanganService) *RuanganHandler {
	return &RuanganHandler{svc: svc}
}

// List returns all rooms.
func (h *RuanganHandler) List(ctx context.Context, req *dto.EmptyRequest) ([]storage.Ruangan, error) {
	rows, err := h.svc.List()
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.Ruangan{}
	}
	return rows, nil
}

// Create registers a new room.
func (h *RuanganHandler) Create(ctx context.Context, req *dto.CreateRuanganRequest) (*storage.Ruangan, error) {
	return h.svc.Create(storage.CreateRuangan{Nama: req.Nama})
}

// Update changes selected fields of a room.
func (h *RuanganHandler) Update(ctx context.Context, req *dto.UpdateRuanganRequest) (*storage.Ruangan, error) {
	return h.svc.Update(req.ID, storage.UpdateRuangan{Nama: req.Nama})
}

// Delete removes a room.
func (h *RuanganHandler) Delete(ctx context.Context, req *dto.IDRequest) (*dto.MessageResponse, error) {
	if err := h.svc.Delete(req.ID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Status: "deleted"}, nil
}
