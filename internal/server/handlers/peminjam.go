package handlers

import (
	"context"

	"github.com/sekolahkita/sipinjam/internal/server/dto"
	"github.com/sekolahkita/sipinjam/internal/storage"
)

// PeminjamHandler handles borrower endpoints.
type PeminjamHandler struct {
	svc *storage.PeminjamService
}

// NewPeminjamHandler creates a new borrower handler.
func NewPeminjamHandler(svc *storage.PeminjamService) *PeminjamHandler {
	return &PeminjamHandler{svc: svc}
}

// List returns all borrowers.
func (h *PeminjamHandler) List(ctx context.Context, req *dto.EmptyRequest) ([]storage.Peminjam, error) {
	rows, err := h.svc.List()
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.Peminjam{}
	}
	return rows, nil
}

// Create registers a new borrower.
func (h *PeminjamHandler) Create(ctx context.Context, req *dto.CreatePeminjamRequest) (*storage.Peminjam, error) {
	return h.svc.Create(storage.CreatePeminjam{
		Nama:       req.Nama,
		Tipe:       storage.TipePeminjam(req.Tipe),
		NomorInduk: req.NomorInduk,
	})
}

// Update changes selected fields of a borrower.
func (h *PeminjamHandler) Update(ctx context.Context, req *dto.UpdatePeminjamRequest) (*storage.Peminjam, error) {
	upd := storage.UpdatePeminjam{
		Nama:       req.Nama,
		NomorInduk: req.NomorInduk,
	}
	if req.Tipe != nil {
		t := storage.TipePeminjam(*req.Tipe)
		upd.Tipe = &t
	}
	return h.svc.Update(req.ID, upd)
}

// Delete removes a borrower.
func (h *PeminjamHandler) Delete(ctx context.Context, req *dto.IDRequest) (*dto.MessageResponse, error) {
	if err := h.svc.Delete(req.ID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Status: "deleted"}, nil
}
