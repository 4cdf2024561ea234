package storage

import (
	"errors"
	"testing"
)

func TestBarangService(t *testing.T) {
	db := newTestDB(t)

	// Create
	b, err := db.Barang.Create(CreateBarang{Nama: "Proyektor Epson", Kode: "PRJ-01", Kondisi: KondisiBaik, Deskripsi: "Lengkap dengan remote"})
	if err != nil {
		t.Fatalf("Failed to create barang: %v", err)
	}
	if b.ID == "" {
		t.Error("Expected generated ID")
	}
	if b.Status != StatusBarangTersedia {
		t.Errorf("Expected new item to be Tersedia, got %s", b.Status)
	}

	// Get
	got, err := db.Barang.Get(b.ID)
	if err != nil {
		t.Fatalf("Failed to get barang: %v", err)
	}
	if got.Nama != "Proyektor Epson" {
		t.Errorf("Expected name Proyektor Epson, got %s", got.Nama)
	}

	// Duplicate inventory code
	_, err = db.Barang.Create(CreateBarang{Nama: "Proyektor lain", Kode: "PRJ-01", Kondisi: KondisiBaik})
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateError, got %v", err)
	}
	if dup.Field != "kode_barang" || dup.Value != "PRJ-01" {
		t.Errorf("Unexpected duplicate detail: %#v", dup)
	}
	rows, err := db.Barang.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("Failed create must leave the table unchanged, got %d rows", len(rows))
	}

	// Update
	nama := "Proyektor Epson EB-X500"
	kondisi := KondisiRusakRingan
	updated, err := db.Barang.Update(b.ID, UpdateBarang{Nama: &nama, Kondisi: &kondisi})
	if err != nil {
		t.Fatalf("Failed to update barang: %v", err)
	}
	if updated.Nama != nama || updated.Kondisi != KondisiRusakRingan {
		t.Errorf("Update not applied: %#v", updated)
	}
	if updated.Kode != "PRJ-01" {
		t.Errorf("Unspecified field must be unchanged, got kode %s", updated.Kode)
	}

	// Update to a code held by another item
	b2, err := db.Barang.Create(CreateBarang{Nama: "Laptop", Kode: "LPT-01", Kondisi: KondisiBaik})
	if err != nil {
		t.Fatal(err)
	}
	kode := "PRJ-01"
	if _, err := db.Barang.Update(b2.ID, UpdateBarang{Kode: &kode}); !errors.As(err, &dup) {
		t.Errorf("Expected DuplicateError on code collision, got %v", err)
	}
	// Re-submitting an item's own code is not a collision.
	kode = "LPT-01"
	if _, err := db.Barang.Update(b2.ID, UpdateBarang{Kode: &kode}); err != nil {
		t.Errorf("Updating item with its own code should succeed: %v", err)
	}

	// Delete
	if err := db.Barang.Delete(b2.ID); err != nil {
		t.Fatalf("Failed to delete barang: %v", err)
	}
	var notFound *NotFoundError
	if _, err := db.Barang.Get(b2.ID); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError after delete, got %v", err)
	}
	if err := db.Barang.Delete(b2.ID); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError on double delete, got %v", err)
	}
}

func TestBarangDeleteWhileOnLoan(t *testing.T) {
	db := newTestDB(t)

	b, err := db.Barang.Create(CreateBarang{Nama: "Kamera", Kode: "KMR-01", Kondisi: KondisiBaik})
	if err != nil {
		t.Fatal(err)
	}
	p, err := db.Peminjam.Create(CreatePeminjam{Nama: "Budi", Tipe: TipePeminjamSiswa, NomorInduk: "12345"})
	if err != nil {
		t.Fatal(err)
	}
	trans, err := db.Transaksi.Checkout(p.ID, "2026-09-08", []CartItem{{Jenis: JenisBarang, ID: b.ID}})
	if err != nil {
		t.Fatal(err)
	}

	var conflict *ConflictError
	if err := db.Barang.Delete(b.ID); !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError while item is on loan, got %v", err)
	}

	// After the return, deletion is allowed and history survives
	// through line snapshots.
	if _, err := db.Transaksi.Complete(trans.ID, nil); err != nil {
		t.Fatal(err)
	}
	if err := db.Barang.Delete(b.ID); err != nil {
		t.Fatalf("Expected delete to succeed after return: %v", err)
	}
	lines, err := db.Transaksi.Lines(trans.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].SnapshotNamaBarang != "Kamera" || lines[0].SnapshotKodeBarang != "KMR-01" {
		t.Errorf("Expected snapshots to survive item deletion: %#v", lines[0])
	}
}
