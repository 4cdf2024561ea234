// Package handlers implements the typed endpoint handlers consumed by
// the server's router.
package handlers

import (
	"context"

	"github.com/sekolahkita/sipinjam/internal/server/dto"
	"github.com/sekolahkita/sipinjam/internal/storage"
)

// BarangHandler handles item endpoints.
type BarangHandler struct {
	svc *storage.BarangService
}

// NewBarangHandler creates a new item handler.
func NewBarangHandler(svc *storage.BarangService) *BarangHandler {
	return &BarangHandler{svc: svc}
}

// List returns all items.
func (h *BarangHandler) List(ctx context.Context, req *dto.EmptyRequest) ([]storage.Barang, error) {
	rows, err := h.svc.List()
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.Barang{}
	}
	return rows, nil
}

// Create registers a new item.
func (h *BarangHandler) Create(ctx context.Context, req *dto.CreateBarangRequest) (*storage.Barang, error) {
	return h.svc.Create(storage.CreateBarang{
		Nama:      req.Nama,
		Kode:      req.Kode,
		Kondisi:   storage.KondisiBarang(req.Kondisi),
		Deskripsi: req.Deskripsi,
	})
}

// Update changes selected fields of an item.
func (h *BarangHandler) Update(ctx context.Context, req *dto.UpdateBarangRequest) (*storage.Barang, error) {
	upd := storage.UpdateBarang{
		Nama:      req.Nama,
		Kode:      req.Kode,
		Deskripsi: req.Deskripsi,
	}
	if req.Kondisi != nil {
		k := storage.KondisiBarang(*req.Kondisi)
		upd.Kondisi = &k
	}
	return h.svc.Update(req.ID, upd)
}

// Delete removes an item.
func (h *BarangHandler) Delete(ctx context.Context, req *dto.IDRequest) (*dto.MessageResponse, error) {
	if err := h.svc.Delete(req.ID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Status: "deleted"}, nil
}
