package handlers

import (
	"context"

	"github.com/sekolahkita/sipinjam/internal/server/dto"
	"github.com/sekolahkita/sipinjam/internal/storage"
)

// TransaksiHandler handles checkout/return workflow endpoints.
type TransaksiHandler struct {
	svc *storage.TransaksiService
}

// NewTransaksiHandler creates a new transaction handler.
func NewTransaksiHandler(svc *storage.TransaksiService) *TransaksiHandler {
	return &TransaksiHandler{svc: svc}
}

// List returns all transactions, newest checkout first.
func (h *TransaksiHandler) List(ctx context.Context, req *dto.EmptyRequest) ([]storage.Transaksi, error) {
	rows, err := h.svc.List()
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.Transaksi{}
	}
	return rows, nil
}

// Checkout opens a transaction over a cart of items/rooms.
func (h *TransaksiHandler) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*storage.Transaksi, error) {
	cart := make([]storage.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		cart = append(cart, storage.CartItem{
			Jenis: storage.JenisItem(item.Jenis),
			ID:    item.ID,
		})
	}
	return h.svc.Checkout(req.IDPeminjam, req.TanggalRencanaKembali, cart)
}

// Lines returns the detail lines of one transaction.
func (h *TransaksiHandler) Lines(ctx context.Context, req *dto.IDRequest) ([]storage.DetailTransaksi, error) {
	rows, err := h.svc.Lines(req.ID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []storage.DetailTransaksi{}
	}
	return rows, nil
}

// Complete closes an open transaction.
func (h *TransaksiHandler) Complete(ctx context.Context, req *dto.CompleteRequest) (*storage.Transaksi, error) {
	returns := make([]storage.ReturnItem, 0, len(req.Returns))
	for _, ret := range req.Returns {
		returns = append(returns, storage.ReturnItem{
			IDDetail:       ret.IDDetail,
			KondisiSesudah: ret.KondisiSesudah,
			Keterangan:     ret.Keterangan,
		})
	}
	return h.svc.Complete(req.ID, returns)
}

// Import inserts an already-completed historical transaction.
func (h *TransaksiHandler) Import(ctx context.Context, req *dto.ImportRiwayatRequest) (*dto.ImportResponse, error) {
	items := make([]storage.ImportRiwayatItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, storage.ImportRiwayatItem{
			Jenis:          storage.JenisItem(item.Jenis),
			ID:             item.ID,
			KondisiSebelum: item.KondisiSebelum,
			KondisiSesudah: item.KondisiSesudah,
			Keterangan:     item.Keterangan,
			SnapshotNama:   item.SnapshotNama,
			SnapshotKode:   item.SnapshotKode,
		})
	}
	imported, err := h.svc.ImportHistory(storage.ImportRiwayat{
		ID:                    req.ID,
		IDPeminjam:            req.IDPeminjam,
		TanggalPinjam:         req.TanggalPinjam,
		TanggalRencanaKembali: req.TanggalRencanaKembali,
		TanggalKembaliAktual:  req.TanggalKembaliAktual,
		Items:                 items,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ImportResponse{Imported: imported}, nil
}
