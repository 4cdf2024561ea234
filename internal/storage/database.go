package storage

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sekolahkita/sipinjam/internal/jsondb"
)

// Store keys. Part of the on-disk contract.
const (
	keyBarang    = "db_barang"
	keyRuangan   = "db_ruangan"
	keyPeminjam  = "db_peminjam"
	keyTransaksi = "db_transaksi"
	keyDetail    = "db_detail_transaksi"
	keyVersion   = "db_version"
)

// Database owns the five tables and the schema version marker, and
// serializes every logical operation behind one read-write lock.
//
// The substrate's only mutation primitive is a whole-table replace, so
// a compound operation (checkout, return, migration) is a sequence of
// table writes with no rollback; the lock guarantees no other
// operation observes or clobbers the intermediate state, but a crash
// mid-sequence still leaves a partially-updated dataset on disk.
type Database struct {
	mu    sync.RWMutex
	store *jsondb.Store

	barang    *jsondb.Table[Barang]
	ruangan   *jsondb.Table[Ruangan]
	peminjam  *jsondb.Table[Peminjam]
	transaksi *jsondb.Table[Transaksi]
	detail    *jsondb.Table[DetailTransaksi]

	// Service facades exposed to callers.
	Barang    *BarangService
	Ruangan   *RuanganService
	Peminjam  *PeminjamService
	Transaksi *TransaksiService
	Stats     *StatsService
}

// Open opens (or creates) the dataset in dir, initializes absent
// tables and brings the persisted schema up to the current version.
// Migrations complete before any repository or workflow access is
// possible; a failing migration aborts the open.
func Open(dir string) (*Database, error) {
	store, err := jsondb.Open(dir)
	if err != nil {
		return nil, err
	}
	db := &Database{
		store:     store,
		barang:    jsondb.NewTable[Barang](store, keyBarang),
		ruangan:   jsondb.NewTable[Ruangan](store, keyRuangan),
		peminjam:  jsondb.NewTable[Peminjam](store, keyPeminjam),
		transaksi: jsondb.NewTable[Transaksi](store, keyTransaksi),
		detail:    jsondb.NewTable[DetailTransaksi](store, keyDetail),
	}
	if err := db.init(); err != nil {
		return nil, err
	}
	if err := db.runMigrations(); err != nil {
		return nil, err
	}
	db.Barang = &BarangService{db: db}
	db.Ruangan = &RuanganService{db: db}
	db.Peminjam = &PeminjamService{db: db}
	db.Transaksi = &TransaksiService{db: db}
	db.Stats = &StatsService{db: db}
	return db, nil
}

// init writes empty arrays for tables that have never been written,
// and stamps fresh datasets with the latest schema version so they
// never run migrations.
func (db *Database) init() error {
	fresh := true
	for _, key := range []string{keyBarang, keyRuangan, keyPeminjam, keyTransaksi, keyDetail} {
		_, ok, err := db.store.Get(key)
		if err != nil {
			return err
		}
		if ok {
			fresh = false
			continue
		}
		if err := jsondb.WriteRaw(db.store, key, nil); err != nil {
			return fmt.Errorf("failed to initialize table %s: %w", key, err)
		}
	}
	if fresh {
		if _, ok, err := db.store.Get(keyVersion); err != nil {
			return err
		} else if !ok {
			slog.Info("Initialized fresh dataset", "dir", db.store.Dir(), "version", latestVersion)
			return db.setVersion(latestVersion)
		}
	}
	return nil
}

// newID generates an opaque unique identifier. The UUID string format
// matches identifiers written by earlier deployments.
func newID() string {
	return uuid.NewString()
}

// now returns the current time in the RFC 3339 wire format used by
// tanggal_pinjam and tanggal_kembali_aktual.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func strPtr(s string) *string {
	return &s
}
