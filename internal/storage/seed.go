// Optional YAML seed data for first-run master tables.

package storage

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedBarang is one item of a seed file.
type SeedBarang struct {
	Nama      string        `yaml:"nama"`
	Kode      string        `yaml:"kode"`
	Kondisi   KondisiBarang `yaml:"kondisi"`
	Deskripsi string        `yaml:"deskripsi"`
}

// SeedRuangan is one room of a seed file.
type SeedRuangan struct {
	Nama string `yaml:"nama"`
}

// SeedPeminjam is one borrower of a seed file.
type SeedPeminjam struct {
	Nama       string       `yaml:"nama"`
	Tipe       TipePeminjam `yaml:"tipe"`
	NomorInduk string       `yaml:"nomor_induk"`
}

// SeedData is the initial master data of a deployment.
type SeedData struct {
	Barang   []SeedBarang   `yaml:"barang"`
	Ruangan  []SeedRuangan  `yaml:"ruangan"`
	Peminjam []SeedPeminjam `yaml:"peminjam"`
}

// LoadSeedFile parses a YAML seed file.
func LoadSeedFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// ApplySeed loads seed master data into tables that are still empty.
// Non-empty tables are left alone, so a seed file is safe to keep
// configured across restarts. Seeded records get fresh IDs and pass
// the same validation and uniqueness rules as repository creates.
func (db *Database) ApplySeed(seed *SeedData) error {
	if err := db.seedBarang(seed.Barang); err != nil {
		return err
	}
	if err := db.seedRuangan(seed.Ruangan); err != nil {
		return err
	}
	return db.seedPeminjam(seed.Peminjam)
}

func (db *Database) seedBarang(seed []SeedBarang) error {
	if len(seed) == 0 {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	existing, err := db.barang.Read()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	rows := make([]Barang, 0, len(seed))
	seen := map[string]struct{}{}
	for _, s := range seed {
		if _, dup := seen[s.Kode]; dup {
			return &DuplicateError{Field: "kode_barang", Value: s.Kode}
		}
		seen[s.Kode] = struct{}{}
		b := Barang{
			ID:        newID(),
			Nama:      s.Nama,
			Kode:      s.Kode,
			Kondisi:   s.Kondisi,
			Deskripsi: s.Deskripsi,
			Status:    StatusBarangTersedia,
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("seed barang %q: %w", s.Kode, err)
		}
		rows = append(rows, b)
	}
	if err := db.barang.Write(rows); err != nil {
		return err
	}
	slog.Info("Seeded barang", "count", len(rows))
	return nil
}

func (db *Database) seedRuangan(seed []SeedRuangan) error {
	if len(seed) == 0 {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	existing, err := db.ruangan.Read()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	rows := make([]Ruangan, 0, len(seed))
	for _, s := range seed {
		r := Ruangan{ID: newID(), Nama: s.Nama, Status: StatusRuanganTersedia}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("seed ruangan %q: %w", s.Nama, err)
		}
		rows = append(rows, r)
	}
	if err := db.ruangan.Write(rows); err != nil {
		return err
	}
	slog.Info("Seeded ruangan", "count", len(rows))
	return nil
}

func (db *Database) seedPeminjam(seed []SeedPeminjam) error {
	if len(seed) == 0 {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	existing, err := db.peminjam.Read()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	rows := make([]Peminjam, 0, len(seed))
	seen := map[string]struct{}{}
	for _, s := range seed {
		if _, dup := seen[s.NomorInduk]; dup {
			return &DuplicateError{Field: "nomor_induk", Value: s.NomorInduk}
		}
		seen[s.NomorInduk] = struct{}{}
		p := Peminjam{ID: newID(), Nama: s.Nama, Tipe: s.Tipe, NomorInduk: s.NomorInduk}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed peminjam %q: %w", s.NomorInduk, err)
		}
		rows = append(rows, p)
	}
	if err := db.peminjam.Write(rows); err != nil {
		return err
	}
	slog.Info("Seeded peminjam", "count", len(rows))
	return nil
}
