// Package storage implements the lending tracker's data layer: master
// data repositories (barang/ruangan/peminjam), the checkout/return
// transaction workflow, dataset migrations and derived statistics, all
// persisted through the jsondb key-value substrate.
//
// Field names and enum literals below are the on-disk contract shared
// with data written by earlier deployments of the system; they must
// round-trip through JSON exactly.
package storage

import "errors"

// KondisiBarang is the condition rating of an item.
type KondisiBarang string

const (
	// KondisiBaik marks an item in good condition.
	KondisiBaik KondisiBarang = "Baik"
	// KondisiRusakRingan marks lightly damaged items.
	KondisiRusakRingan KondisiBarang = "Rusak Ringan"
	// KondisiRusakBerat marks heavily damaged items.
	KondisiRusakBerat KondisiBarang = "Rusak Berat"
)

// Valid reports whether k is a known condition literal.
func (k KondisiBarang) Valid() bool {
	switch k {
	case KondisiBaik, KondisiRusakRingan, KondisiRusakBerat:
		return true
	}
	return false
}

// StatusBarang is the availability of an item.
type StatusBarang string

const (
	// StatusBarangTersedia means the item can be checked out.
	StatusBarangTersedia StatusBarang = "Tersedia"
	// StatusBarangDipinjam means the item is out on an open transaction.
	StatusBarangDipinjam StatusBarang = "Dipinjam"
)

// StatusRuangan is the availability of a room.
type StatusRuangan string

const (
	// StatusRuanganTersedia means the room can be checked out.
	StatusRuanganTersedia StatusRuangan = "Tersedia"
	// StatusRuanganDipinjam means the room is out on an open transaction.
	StatusRuanganDipinjam StatusRuangan = "Dipinjam"
)

// TipePeminjam is the registration category of a borrower.
type TipePeminjam string

const (
	// TipePeminjamGuru is a teacher or other staff member.
	TipePeminjamGuru TipePeminjam = "Guru/GTK"
	// TipePeminjamSiswa is a student.
	TipePeminjamSiswa TipePeminjam = "Siswa"

	// tipePeminjamGuruLegacy is the pre-v1 teacher literal, rewritten
	// to TipePeminjamGuru by the v1 migration.
	tipePeminjamGuruLegacy = "Guru"
)

// Valid reports whether t is a known borrower type literal.
func (t TipePeminjam) Valid() bool {
	return t == TipePeminjamGuru || t == TipePeminjamSiswa
}

// StatusTransaksi is the lifecycle state of a lending transaction.
// The only transition is Dipinjam to Selesai, once, via Complete.
type StatusTransaksi string

const (
	// StatusTransaksiDipinjam is an open transaction; its cart contents
	// are unavailable.
	StatusTransaksiDipinjam StatusTransaksi = "Dipinjam"
	// StatusTransaksiSelesai is a returned, closed transaction. Terminal.
	StatusTransaksiSelesai StatusTransaksi = "Selesai"
)

// Barang is a borrowable physical asset with a unique code.
type Barang struct {
	ID        string        `json:"id_barang" jsonschema:"description=Unique item identifier (UUID)"`
	Nama      string        `json:"nama_barang" jsonschema:"description=Item display name"`
	Kode      string        `json:"kode_barang" jsonschema:"description=Inventory code, unique across all items"`
	Kondisi   KondisiBarang `json:"kondisi" jsonschema:"description=Condition rating (Baik/Rusak Ringan/Rusak Berat)"`
	Deskripsi string        `json:"deskripsi" jsonschema:"description=Free-form completeness note; overwritten by the latest return remark"`
	Status    StatusBarang  `json:"status" jsonschema:"description=Availability (Tersedia/Dipinjam)"`
}

// Validate checks that the record is well-formed.
func (b *Barang) Validate() error {
	if b.ID == "" {
		return errIDRequired
	}
	if b.Nama == "" {
		return errNamaRequired
	}
	if b.Kode == "" {
		return errKodeRequired
	}
	if !b.Kondisi.Valid() {
		return errKondisiInvalid
	}
	return nil
}

// Ruangan is a borrowable space. Rooms have no condition rating.
type Ruangan struct {
	ID     string        `json:"id_ruangan" jsonschema:"description=Unique room identifier (UUID)"`
	Nama   string        `json:"nama_ruangan" jsonschema:"description=Room display name"`
	Status StatusRuangan `json:"status" jsonschema:"description=Availability (Tersedia/Dipinjam)"`
}

// Validate checks that the record is well-formed.
func (r *Ruangan) Validate() error {
	if r.ID == "" {
		return errIDRequired
	}
	if r.Nama == "" {
		return errNamaRequired
	}
	return nil
}

// Peminjam is a registered borrower.
type Peminjam struct {
	ID         string       `json:"id_peminjam" jsonschema:"description=Unique borrower identifier (UUID)"`
	Nama       string       `json:"nama_peminjam" jsonschema:"description=Borrower display name"`
	Tipe       TipePeminjam `json:"tipe_peminjam" jsonschema:"description=Borrower category (Guru/GTK or Siswa)"`
	NomorInduk string       `json:"nomor_induk" jsonschema:"description=Registration number (NIP/NISN), unique across all borrowers"`
}

// Validate checks that the record is well-formed.
func (p *Peminjam) Validate() error {
	if p.ID == "" {
		return errIDRequired
	}
	if p.Nama == "" {
		return errNamaRequired
	}
	if !p.Tipe.Valid() {
		return errTipeInvalid
	}
	if p.NomorInduk == "" {
		return errNomorIndukRequired
	}
	return nil
}

// Transaksi is one checkout event covering a cart of items/rooms for
// one borrower, open until returned.
//
// Timestamp fields stay strings so blobs written by earlier
// deployments round-trip byte-compatibly: tanggal_pinjam and
// tanggal_kembali_aktual are RFC 3339, tanggal_rencana_kembali is a
// bare YYYY-MM-DD date.
type Transaksi struct {
	ID                    string          `json:"id_transaksi" jsonschema:"description=Unique transaction identifier (UUID)"`
	IDPeminjam            string          `json:"id_peminjam" jsonschema:"description=Borrower who checked out the cart"`
	TanggalPinjam         string          `json:"tanggal_pinjam" jsonschema:"description=Checkout timestamp (RFC 3339)"`
	TanggalRencanaKembali string          `json:"tanggal_rencana_kembali" jsonschema:"description=Planned return date"`
	TanggalKembaliAktual  *string         `json:"tanggal_kembali_aktual" jsonschema:"description=Actual return timestamp, null while open"`
	Status                StatusTransaksi `json:"status_transaksi" jsonschema:"description=Lifecycle state (Dipinjam/Selesai)"`
}

// DetailTransaksi is one item-or-room line within a transaction.
//
// Exactly one of IDBarang/IDRuangan is set. KondisiSebelum and the
// snapshot fields are fixed at checkout and never change afterwards;
// KondisiSesudah and Keterangan are absent until the return and fixed
// from then on. Snapshots let history survive later renames or
// deletions of the master record.
type DetailTransaksi struct {
	ID                  string  `json:"id_detail" jsonschema:"description=Unique line identifier (UUID)"`
	IDTransaksi         string  `json:"id_transaksi" jsonschema:"description=Parent transaction"`
	IDBarang            *string `json:"id_barang" jsonschema:"description=Referenced item, null for room lines"`
	IDRuangan           *string `json:"id_ruangan" jsonschema:"description=Referenced room, null for item lines"`
	KondisiSebelum      *string `json:"kondisi_sebelum" jsonschema:"description=Item condition at checkout, null for rooms"`
	KondisiSesudah      *string `json:"kondisi_sesudah,omitempty" jsonschema:"description=Item condition at return"`
	Keterangan          *string `json:"keterangan,omitempty" jsonschema:"description=Return remark"`
	SnapshotNamaBarang  string  `json:"snapshot_nama_barang,omitempty" jsonschema:"description=Item name captured at checkout"`
	SnapshotKodeBarang  string  `json:"snapshot_kode_barang,omitempty" jsonschema:"description=Item code captured at checkout"`
	SnapshotNamaRuangan string  `json:"snapshot_nama_ruangan,omitempty" jsonschema:"description=Room name captured at checkout"`
}

// DashboardStats are derived counts over the current table state.
type DashboardStats struct {
	TotalBarang     int `json:"totalBarang"`
	BarangTersedia  int `json:"barangTersedia"`
	TotalRuangan    int `json:"totalRuangan"`
	RuanganTersedia int `json:"ruanganTersedia"`
	TransaksiAktif  int `json:"transaksiAktif"`
}

var (
	errIDRequired         = errors.New("id is required")
	errNamaRequired       = errors.New("nama is required")
	errKodeRequired       = errors.New("kode_barang is required")
	errKondisiInvalid     = errors.New("kondisi is not a known condition")
	errTipeInvalid        = errors.New("tipe_peminjam is not a known borrower type")
	errNomorIndukRequired = errors.New("nomor_induk is required")
)
