package storage

import (
	"errors"
	"sort"
	"time"
)

// keteranganKosong is the placeholder the UI sends for an empty return
// remark. It is stored on the line but never overwrites the item
// description.
const keteranganKosong = "-"

// JenisItem tags a cart entry as an item or a room.
type JenisItem string

const (
	// JenisBarang is an item cart entry.
	JenisBarang JenisItem = "BARANG"
	// JenisRuangan is a room cart entry.
	JenisRuangan JenisItem = "RUANGAN"
)

// CartItem is one entry of a checkout cart.
type CartItem struct {
	Jenis JenisItem
	ID    string
}

// ReturnItem carries the per-line inputs of a return: the condition
// the asset came back in and a free-form remark. The core stores both
// as supplied; the caller owns the damaged-requires-remark rule.
type ReturnItem struct {
	IDDetail       string
	KondisiSesudah string
	Keterangan     string
}

// TransaksiService is the checkout/return workflow engine. It is the
// only writer of transactions and their lines, and the only component
// that changes asset availability.
type TransaksiService struct {
	db *Database
}

var errCartEmpty = errors.New("cart is empty")

// List returns all transactions, newest checkout first.
func (s *TransaksiService) List() ([]Transaksi, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rows, err := s.db.transaksi.Read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return parseWaktu(rows[i].TanggalPinjam).After(parseWaktu(rows[j].TanggalPinjam))
	})
	return rows, nil
}

// Get returns one transaction by ID.
func (s *TransaksiService) Get(id string) (*Transaksi, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rows, err := s.db.transaksi.Read()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "transaksi", ID: id}
}

// Lines returns the detail lines belonging to one transaction.
func (s *TransaksiService) Lines(transaksiID string) ([]DetailTransaksi, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rows, err := s.db.detail.Read()
	if err != nil {
		return nil, err
	}
	var out []DetailTransaksi
	for i := range rows {
		if rows[i].IDTransaksi == transaksiID {
			out = append(out, rows[i])
		}
	}
	return out, nil
}

// Checkout opens a transaction for one borrower over a non-empty cart
// of items/rooms: it creates the header and one line per cart entry,
// snapshots each item's condition and name/code (or the room's name),
// and marks every cart target Dipinjam. Targets must exist and be
// Tersedia. The tables are persisted sequentially as one logical unit
// under the database lock.
func (s *TransaksiService) Checkout(peminjamID, tanggalRencanaKembali string, cart []CartItem) (*Transaksi, error) {
	if len(cart) == 0 {
		return nil, errCartEmpty
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	peminjam, err := s.db.peminjam.Read()
	if err != nil {
		return nil, err
	}
	found := false
	for i := range peminjam {
		if peminjam[i].ID == peminjamID {
			found = true
			break
		}
	}
	if !found {
		return nil, &NotFoundError{Resource: "peminjam", ID: peminjamID}
	}

	transaksi, err := s.db.transaksi.Read()
	if err != nil {
		return nil, err
	}
	details, err := s.db.detail.Read()
	if err != nil {
		return nil, err
	}
	barang, err := s.db.barang.Read()
	if err != nil {
		return nil, err
	}
	ruangan, err := s.db.ruangan.Read()
	if err != nil {
		return nil, err
	}

	trans := Transaksi{
		ID:                    newID(),
		IDPeminjam:            peminjamID,
		TanggalPinjam:         now(),
		TanggalRencanaKembali: tanggalRencanaKembali,
		TanggalKembaliAktual:  nil,
		Status:                StatusTransaksiDipinjam,
	}

	for _, item := range cart {
		detail := DetailTransaksi{
			ID:          newID(),
			IDTransaksi: trans.ID,
		}
		switch item.Jenis {
		case JenisBarang:
			idx := -1
			for i := range barang {
				if barang[i].ID == item.ID {
					idx = i
					break
				}
			}
			if idx == -1 {
				return nil, &NotFoundError{Resource: "barang", ID: item.ID}
			}
			if barang[idx].Status != StatusBarangTersedia {
				return nil, &ConflictError{Reason: "barang " + barang[idx].Kode + " is not available"}
			}
			barang[idx].Status = StatusBarangDipinjam
			detail.IDBarang = strPtr(item.ID)
			detail.KondisiSebelum = strPtr(string(barang[idx].Kondisi))
			detail.SnapshotNamaBarang = barang[idx].Nama
			detail.SnapshotKodeBarang = barang[idx].Kode
		case JenisRuangan:
			idx := -1
			for i := range ruangan {
				if ruangan[i].ID == item.ID {
					idx = i
					break
				}
			}
			if idx == -1 {
				return nil, &NotFoundError{Resource: "ruangan", ID: item.ID}
			}
			if ruangan[idx].Status != StatusRuanganTersedia {
				return nil, &ConflictError{Reason: "ruangan " + ruangan[idx].Nama + " is not available"}
			}
			ruangan[idx].Status = StatusRuanganDipinjam
			detail.IDRuangan = strPtr(item.ID)
			detail.SnapshotNamaRuangan = ruangan[idx].Nama
		default:
			return nil, &ConflictError{Reason: "unknown cart entry type " + string(item.Jenis)}
		}
		details = append(details, detail)
	}

	if err := s.db.transaksi.Write(append(transaksi, trans)); err != nil {
		return nil, err
	}
	if err := s.db.detail.Write(details); err != nil {
		return nil, err
	}
	if err := s.db.barang.Write(barang); err != nil {
		return nil, err
	}
	if err := s.db.ruangan.Write(ruangan); err != nil {
		return nil, err
	}
	return &trans, nil
}

// Complete closes an open transaction: the header moves to Selesai
// with the actual return timestamp, each supplied line records its
// after-condition and remark, and every referenced asset becomes
// Tersedia again. Item lines also write the after-condition back to
// the item and, for a meaningful remark, replace its description.
//
// Completing an unknown transaction fails with NotFoundError, an
// already-completed one with ConflictError; the Dipinjam to Selesai
// transition happens at most once.
func (s *TransaksiService) Complete(transaksiID string, returns []ReturnItem) (*Transaksi, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	transaksi, err := s.db.transaksi.Read()
	if err != nil {
		return nil, err
	}
	tIdx := -1
	for i := range transaksi {
		if transaksi[i].ID == transaksiID {
			tIdx = i
			break
		}
	}
	if tIdx == -1 {
		return nil, &NotFoundError{Resource: "transaksi", ID: transaksiID}
	}
	if transaksi[tIdx].Status == StatusTransaksiSelesai {
		return nil, &ConflictError{Reason: "transaksi is already completed"}
	}

	details, err := s.db.detail.Read()
	if err != nil {
		return nil, err
	}
	barang, err := s.db.barang.Read()
	if err != nil {
		return nil, err
	}
	ruangan, err := s.db.ruangan.Read()
	if err != nil {
		return nil, err
	}

	transaksi[tIdx].Status = StatusTransaksiSelesai
	transaksi[tIdx].TanggalKembaliAktual = strPtr(now())

	for _, ret := range returns {
		dIdx := -1
		for i := range details {
			if details[i].ID == ret.IDDetail && details[i].IDTransaksi == transaksiID {
				dIdx = i
				break
			}
		}
		if dIdx == -1 {
			// Unknown line IDs are skipped; the header still closes.
			continue
		}
		details[dIdx].KondisiSesudah = strPtr(ret.KondisiSesudah)
		details[dIdx].Keterangan = strPtr(ret.Keterangan)

		switch {
		case details[dIdx].IDBarang != nil:
			for i := range barang {
				if barang[i].ID != *details[dIdx].IDBarang {
					continue
				}
				barang[i].Status = StatusBarangTersedia
				if ret.KondisiSesudah != "" {
					barang[i].Kondisi = KondisiBarang(ret.KondisiSesudah)
				}
				if ret.Keterangan != "" && ret.Keterangan != keteranganKosong {
					barang[i].Deskripsi = ret.Keterangan
				}
				break
			}
		case details[dIdx].IDRuangan != nil:
			for i := range ruangan {
				if ruangan[i].ID == *details[dIdx].IDRuangan {
					ruangan[i].Status = StatusRuanganTersedia
					break
				}
			}
		}
	}

	if err := s.db.transaksi.Write(transaksi); err != nil {
		return nil, err
	}
	if err := s.db.detail.Write(details); err != nil {
		return nil, err
	}
	if err := s.db.barang.Write(barang); err != nil {
		return nil, err
	}
	if err := s.db.ruangan.Write(ruangan); err != nil {
		return nil, err
	}
	t := transaksi[tIdx]
	return &t, nil
}

// ImportRiwayatItem is one line of an imported historical transaction.
type ImportRiwayatItem struct {
	Jenis          JenisItem
	ID             string
	KondisiSebelum string
	KondisiSesudah string
	Keterangan     string
	SnapshotNama   string
	SnapshotKode   string
}

// ImportRiwayat describes an already-completed transaction brought in
// from external records.
type ImportRiwayat struct {
	// ID dedupes re-imports when supplied; empty means generate.
	ID                    string
	IDPeminjam            string
	TanggalPinjam         string
	TanggalRencanaKembali string
	TanggalKembaliAktual  string
	Items                 []ImportRiwayatItem
}

// ImportHistory inserts a completed historical transaction with its
// lines. Master-data availability is untouched: history imports never
// put anything on loan. Returns false without changes when a
// transaction with the supplied ID already exists.
func (s *TransaksiService) ImportHistory(req ImportRiwayat) (bool, error) {
	if len(req.Items) == 0 {
		return false, errCartEmpty
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	transaksi, err := s.db.transaksi.Read()
	if err != nil {
		return false, err
	}
	id := req.ID
	if id == "" {
		id = newID()
	}
	for i := range transaksi {
		if transaksi[i].ID == id {
			return false, nil
		}
	}
	details, err := s.db.detail.Read()
	if err != nil {
		return false, err
	}

	trans := Transaksi{
		ID:                    id,
		IDPeminjam:            req.IDPeminjam,
		TanggalPinjam:         req.TanggalPinjam,
		TanggalRencanaKembali: req.TanggalRencanaKembali,
		TanggalKembaliAktual:  strPtr(req.TanggalKembaliAktual),
		Status:                StatusTransaksiSelesai,
	}
	for _, item := range req.Items {
		detail := DetailTransaksi{
			ID:             newID(),
			IDTransaksi:    id,
			KondisiSebelum: strPtr(item.KondisiSebelum),
			KondisiSesudah: strPtr(item.KondisiSesudah),
			Keterangan:     strPtr(item.Keterangan),
		}
		if item.Jenis == JenisBarang {
			detail.IDBarang = strPtr(item.ID)
			detail.SnapshotNamaBarang = item.SnapshotNama
			detail.SnapshotKodeBarang = item.SnapshotKode
		} else {
			detail.IDRuangan = strPtr(item.ID)
			detail.SnapshotNamaRuangan = item.SnapshotNama
		}
		details = append(details, detail)
	}

	if err := s.db.transaksi.Write(append(transaksi, trans)); err != nil {
		return false, err
	}
	if err := s.db.detail.Write(details); err != nil {
		return false, err
	}
	return true, nil
}

// parseWaktu parses the stored date formats for sorting. Unparseable
// values sort last.
func parseWaktu(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
