package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const seedYAML = `barang:
  - nama: Proyektor Epson
    kode: PRJ-01
    kondisi: Baik
    deskripsi: Lengkap dengan remote
  - nama: Laptop Asus
    kode: LPT-01
    kondisi: Rusak Ringan
ruangan:
  - nama: Lab Komputer
  - nama: Aula
peminjam:
  - nama: Ibu Sari
    tipe: Guru/GTK
    nomor_induk: "196512"
  - nama: Budi
    tipe: Siswa
    nomor_induk: "12345"
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplySeed(t *testing.T) {
	db := newTestDB(t)

	seed, err := LoadSeedFile(writeSeedFile(t, seedYAML))
	if err != nil {
		t.Fatalf("Failed to load seed file: %v", err)
	}
	if err := db.ApplySeed(seed); err != nil {
		t.Fatalf("Failed to apply seed: %v", err)
	}

	items, err := db.Barang.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 seeded items, got %d", len(items))
	}
	if items[1].Kondisi != KondisiRusakRingan {
		t.Errorf("Expected seed condition preserved, got %s", items[1].Kondisi)
	}
	if items[0].Status != StatusBarangTersedia {
		t.Errorf("Seeded items must start Tersedia, got %s", items[0].Status)
	}
	rooms, err := db.Ruangan.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 2 {
		t.Errorf("Expected 2 seeded rooms, got %d", len(rooms))
	}
	people, err := db.Peminjam.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(people) != 2 {
		t.Errorf("Expected 2 seeded borrowers, got %d", len(people))
	}

	// Re-applying the same seed against populated tables is a no-op.
	if err := db.ApplySeed(seed); err != nil {
		t.Fatalf("Re-applying seed failed: %v", err)
	}
	items, err = db.Barang.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("Seed must not duplicate into populated tables, got %d items", len(items))
	}
}

func TestApplySeedRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)

	seed := &SeedData{Barang: []SeedBarang{
		{Nama: "A", Kode: "X-1", Kondisi: KondisiBaik},
		{Nama: "B", Kode: "X-1", Kondisi: KondisiBaik},
	}}
	var dup *DuplicateError
	if err := db.ApplySeed(seed); !errors.As(err, &dup) {
		t.Fatalf("Expected DuplicateError for colliding seed codes, got %v", err)
	}
}

func TestLoadSeedFileErrors(t *testing.T) {
	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadSeedFile(writeSeedFile(t, "barang: [not a mapping")); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
