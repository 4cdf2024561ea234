// Request types. Path parameters are populated from `path` tags by the
// server's handler wrapper; bodies are JSON with unknown fields
// rejected.

package dto

// EmptyRequest is used by endpoints that take no input.
type EmptyRequest struct{}

// Validate implements Validatable.
func (r *EmptyRequest) Validate() error { return nil }

// IDRequest targets one resource by path ID.
type IDRequest struct {
	ID string `path:"id" validate:"required"`
}

// Validate implements Validatable.
func (r *IDRequest) Validate() error { return checkStruct(r) }

// CreateBarangRequest registers a new item.
type CreateBarangRequest struct {
	Nama      string `json:"nama_barang" validate:"required"`
	Kode      string `json:"kode_barang" validate:"required"`
	Kondisi   string `json:"kondisi" validate:"required,oneof=Baik 'Rusak Ringan' 'Rusak Berat'"`
	Deskripsi string `json:"deskripsi"`
}

// Validate implements Validatable.
func (r *CreateBarangRequest) Validate() error { return checkStruct(r) }

// UpdateBarangRequest changes selected fields of an item. Absent
// fields stay unchanged.
type UpdateBarangRequest struct {
	ID        string  `path:"id" validate:"required"`
	Nama      *string `json:"nama_barang" validate:"omitempty,min=1"`
	Kode      *string `json:"kode_barang" validate:"omitempty,min=1"`
	Kondisi   *string `json:"kondisi" validate:"omitempty,oneof=Baik 'Rusak Ringan' 'Rusak Berat'"`
	Deskripsi *string `json:"deskripsi"`
}

// Validate implements Validatable.
func (r *UpdateBarangRequest) Validate() error { return checkStruct(r) }

// CreateRuanganRequest registers a new room.
type CreateRuanganRequest struct {
	Nama string `json:"nama_ruangan" validate:"required"`
}

// Validate implements Validatable.
func (r *CreateRuanganRequest) Validate() error { return checkStruct(r) }

// UpdateRuanganRequest changes selected fields of a room.
type UpdateRuanganRequest struct {
	ID   string  `path:"id" validate:"required"`
	Nama *string `json:"nama_ruangan" validate:"omitempty,min=1"`
}

// Validate implements Validatable.
func (r *UpdateRuanganRequest) Validate() error { return checkStruct(r) }

// CreatePeminjamRequest registers a new borrower.
type CreatePeminjamRequest struct {
	Nama       string `json:"nama_peminjam" validate:"required"`
	Tipe       string `json:"tipe_peminjam" validate:"required,oneof='Guru/GTK' Siswa"`
	NomorInduk string `json:"nomor_induk" validate:"required"`
}

// Validate implements Validatable.
func (r *CreatePeminjamRequest) Validate() error { return checkStruct(r) }

// UpdatePeminjamRequest changes selected fields of a borrower.
type UpdatePeminjamRequest struct {
	ID         string  `path:"id" validate:"required"`
	Nama       *string `json:"nama_peminjam" validate:"omitempty,min=1"`
	Tipe       *string `json:"tipe_peminjam" validate:"omitempty,oneof='Guru/GTK' Siswa"`
	NomorInduk *string `json:"nomor_induk" validate:"omitempty,min=1"`
}

// Validate implements Validatable.
func (r *UpdatePeminjamRequest) Validate() error { return checkStruct(r) }

// CheckoutItemRequest is one cart entry of a checkout.
type CheckoutItemRequest struct {
	Jenis string `json:"jenis" validate:"required,oneof=BARANG RUANGAN"`
	ID    string `json:"id" validate:"required"`
}

// CheckoutRequest opens a transaction over a cart.
type CheckoutRequest struct {
	IDPeminjam            string                `json:"id_peminjam" validate:"required"`
	TanggalRencanaKembali string                `json:"tanggal_rencana_kembali" validate:"required"`
	Items                 []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate implements Validatable.
func (r *CheckoutRequest) Validate() error { return checkStruct(r) }

// ReturnEntryRequest carries one line's return inputs. Whether a
// damaged condition requires a remark is the UI's rule; the core
// stores what it receives.
type ReturnEntryRequest struct {
	IDDetail       string `json:"id_detail" validate:"required"`
	KondisiSesudah string `json:"kondisi_sesudah"`
	Keterangan     string `json:"keterangan"`
}

// CompleteRequest closes an open transaction.
type CompleteRequest struct {
	ID      string               `path:"id" validate:"required"`
	Returns []ReturnEntryRequest `json:"returns" validate:"dive"`
}

// Validate implements Validatable.
func (r *CompleteRequest) Validate() error { return checkStruct(r) }

// ImportRiwayatItemRequest is one line of an imported historical
// transaction.
type ImportRiwayatItemRequest struct {
	Jenis          string `json:"jenis" validate:"required,oneof=BARANG RUANGAN"`
	ID             string `json:"id"`
	KondisiSebelum string `json:"kondisi_sebelum"`
	KondisiSesudah string `json:"kondisi_sesudah"`
	Keterangan     string `json:"keterangan"`
	SnapshotNama   string `json:"snapshot_nama"`
	SnapshotKode   string `json:"snapshot_kode"`
}

// ImportRiwayatRequest inserts an already-completed transaction from
// external records. ID is optional and dedupes re-imports.
type ImportRiwayatRequest struct {
	ID                    string                     `json:"id_transaksi"`
	IDPeminjam            string                     `json:"id_peminjam" validate:"required"`
	TanggalPinjam         string                     `json:"tanggal_pinjam" validate:"required"`
	TanggalRencanaKembali string                     `json:"tanggal_rencana_kembali" validate:"required"`
	TanggalKembaliAktual  string                     `json:"tanggal_kembali_aktual" validate:"required"`
	Items                 []ImportRiwayatItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate implements Validatable.
func (r *ImportRiwayatRequest) Validate() error { return checkStruct(r) }
