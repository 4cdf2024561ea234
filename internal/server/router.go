// Package server exposes the inventory database over a small JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sekolahkita/sipinjam/internal/server/handlers"
	"github.com/sekolahkita/sipinjam/internal/storage"
)

// NewRouter builds the HTTP routing table for all API endpoints.
func NewRouter(db *storage.Database, version string) http.Handler {
	barang := handlers.NewBarangHandler(db.Barang)
	ruangan := handlers.NewRuanganHandler(db.Ruangan)
	peminjam := handlers.NewPeminjamHandler(db.Peminjam)
	transaksi := handlers.NewTransaksiHandler(db.Transaksi)
	stats := handlers.NewStatsHandler(db.Stats)
	health := handlers.NewHealthHandler(version)

	mux := &http.ServeMux{}

	mux.Handle("GET /api/health", Wrap(health.Health))
	mux.Handle("GET /api/stats", Wrap(stats.Stats))

	mux.Handle("GET /api/barang", Wrap(barang.List))
	mux.Handle("POST /api/barang", Wrap(barang.Create))
	mux.Handle("PUT /api/barang/{id}", Wrap(barang.Update))
	mux.Handle("DELETE /api/barang/{id}", Wrap(barang.Delete))

	mux.Handle("GET /api/ruangan", Wrap(ruangan.List))
	mux.Handle("POST /api/ruangan", Wrap(ruangan.Create))
	mux.Handle("PUT /api/ruangan/{id}", Wrap(ruangan.Update))
	mux.Handle("DELETE /api/ruangan/{id}", Wrap(ruangan.Delete))

	mux.Handle("GET /api/peminjam", Wrap(peminjam.List))
	mux.Handle("POST /api/peminjam", Wrap(peminjam.Create))
	mux.Handle("PUT /api/peminjam/{id}", Wrap(peminjam.Update))
	mux.Handle("DELETE /api/peminjam/{id}", Wrap(peminjam.Delete))

	mux.Handle("GET /api/transaksi", Wrap(transaksi.List))
	mux.Handle("POST /api/transaksi", Wrap(transaksi.Checkout))
	mux.Handle("GET /api/transaksi/{id}/detail", Wrap(transaksi.Lines))
	mux.Handle("POST /api/transaksi/{id}/selesai", Wrap(transaksi.Complete))
	mux.Handle("POST /api/transaksi/import", Wrap(transaksi.Import))

	return logRequests(mux)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.InfoContext(r.Context(), "HTTP",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"dur", time.Since(start).Round(time.Microsecond))
	})
}
