// Schema migrations for datasets written by earlier deployments.

package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/sekolahkita/sipinjam/internal/jsondb"
)

// latestVersion is the schema version this build writes.
const latestVersion = 2

// migration is one versioned dataset rewrite. Steps are applied in
// order against the whole dataset and must be idempotent: re-running
// an applied step finds nothing to change.
type migration struct {
	Version int
	Name    string
	Apply   func(db *Database) error
}

var migrations = []migration{
	{Version: 1, Name: "guru-label-fix", Apply: (*Database).migrateGuruLabel},
	{Version: 2, Name: "uuid-ids", Apply: (*Database).migrateUUIDs},
}

// pendingMigrations returns the steps a dataset at version current
// still needs, in application order.
func pendingMigrations(current int) []migration {
	var out []migration
	for _, m := range migrations {
		if m.Version > current {
			out = append(out, m)
		}
	}
	return out
}

// runMigrations brings the persisted dataset up to latestVersion.
// Strict failure semantics: a failing step aborts with the version
// counter unchanged, so a broken dataset is never served. The version
// is persisted after each step, making an interrupted sequence
// resumable from the first unapplied step.
func (db *Database) runMigrations() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	current, err := db.version()
	if err != nil {
		return err
	}
	steps := pendingMigrations(current)
	if len(steps) == 0 {
		return nil
	}
	slog.Info("Migrating dataset", "from", current, "to", latestVersion)
	for _, step := range steps {
		if err := step.Apply(db); err != nil {
			return fmt.Errorf("migration v%d (%s) failed: %w", step.Version, step.Name, err)
		}
		if err := db.setVersion(step.Version); err != nil {
			return err
		}
		slog.Info("Applied migration", "version", step.Version, "name", step.Name)
	}
	return nil
}

// version reads the persisted schema version; an absent marker reads
// as 0. Earlier deployments stored the counter as a bare string, so
// both encodings are accepted.
func (db *Database) version() (int, error) {
	data, ok, err := db.store.Get(keyVersion)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unreadable schema version marker: %q", data)
}

func (db *Database) setVersion(v int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.store.Put(keyVersion, data)
}

// migrateGuruLabel (v1) rewrites the legacy borrower type literal
// "Guru" to the canonical "Guru/GTK".
func (db *Database) migrateGuruLabel() error {
	rows, err := jsondb.ReadRaw(db.store, keyPeminjam)
	if err != nil {
		return err
	}
	changed := false
	for _, row := range rows {
		if row["tipe_peminjam"] == tipePeminjamGuruLegacy {
			row["tipe_peminjam"] = string(TipePeminjamGuru)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return jsondb.WriteRaw(db.store, keyPeminjam, rows)
}

// migrateUUIDs (v2) rewrites legacy numeric identifiers to UUIDs
// across all five tables, keeping foreign keys consistent through
// old-to-new maps. Tables are rewritten in dependency order (master
// data, then transactions, then lines); the five writes are not
// crash-atomic, but each one is, and the step as a whole is
// idempotent because already-rewritten tables carry string IDs.
func (db *Database) migrateUUIDs() error {
	barang, err := jsondb.ReadRaw(db.store, keyBarang)
	if err != nil {
		return err
	}
	ruangan, err := jsondb.ReadRaw(db.store, keyRuangan)
	if err != nil {
		return err
	}
	peminjam, err := jsondb.ReadRaw(db.store, keyPeminjam)
	if err != nil {
		return err
	}
	transaksi, err := jsondb.ReadRaw(db.store, keyTransaksi)
	if err != nil {
		return err
	}
	details, err := jsondb.ReadRaw(db.store, keyDetail)
	if err != nil {
		return err
	}

	if !hasNumericID(barang, "id_barang") && !hasNumericID(ruangan, "id_ruangan") &&
		!hasNumericID(peminjam, "id_peminjam") && !hasNumericID(transaksi, "id_transaksi") {
		return nil
	}

	barangMap := rewriteIDs(barang, "id_barang")
	if err := jsondb.WriteRaw(db.store, keyBarang, barang); err != nil {
		return err
	}
	ruanganMap := rewriteIDs(ruangan, "id_ruangan")
	if err := jsondb.WriteRaw(db.store, keyRuangan, ruangan); err != nil {
		return err
	}
	peminjamMap := rewriteIDs(peminjam, "id_peminjam")
	if err := jsondb.WriteRaw(db.store, keyPeminjam, peminjam); err != nil {
		return err
	}

	transMap := map[string]string{}
	for _, row := range transaksi {
		if old, ok := numericKey(row["id_transaksi"]); ok {
			// A previous partial deployment stashed a UUID alongside the
			// numeric ID; promote it instead of generating a fresh one.
			newID, _ := row["uuid"].(string)
			if newID == "" {
				newID = uuid.NewString()
			}
			transMap[old] = newID
			row["id_transaksi"] = newID
		}
		if old, ok := numericKey(row["id_peminjam"]); ok {
			if mapped, found := peminjamMap[old]; found {
				row["id_peminjam"] = mapped
			}
		}
		delete(row, "uuid")
	}
	if err := jsondb.WriteRaw(db.store, keyTransaksi, transaksi); err != nil {
		return err
	}

	for _, row := range details {
		if _, isNum := numericKey(row["id_detail"]); isNum || row["id_detail"] == nil {
			row["id_detail"] = uuid.NewString()
		}
		if old, ok := numericKey(row["id_transaksi"]); ok {
			if mapped, found := transMap[old]; found {
				row["id_transaksi"] = mapped
			}
		}
		if old, ok := numericKey(row["id_barang"]); ok {
			if mapped, found := barangMap[old]; found {
				row["id_barang"] = mapped
			}
		}
		if old, ok := numericKey(row["id_ruangan"]); ok {
			if mapped, found := ruanganMap[old]; found {
				row["id_ruangan"] = mapped
			}
		}
	}
	return jsondb.WriteRaw(db.store, keyDetail, details)
}

// rewriteIDs assigns a fresh UUID to every row whose ID field is still
// numeric and returns the old-to-new mapping.
func rewriteIDs(rows []map[string]any, idField string) map[string]string {
	mapping := map[string]string{}
	for _, row := range rows {
		if old, ok := numericKey(row[idField]); ok {
			newID := uuid.NewString()
			mapping[old] = newID
			row[idField] = newID
		}
	}
	return mapping
}

// hasNumericID reports whether the first record's ID field is a JSON
// number, the marker of the legacy identifier scheme.
func hasNumericID(rows []map[string]any, idField string) bool {
	if len(rows) == 0 {
		return false
	}
	_, ok := rows[0][idField].(float64)
	return ok
}

// numericKey formats a legacy numeric ID as a map key.
func numericKey(v any) (string, bool) {
	f, ok := v.(float64)
	if !ok {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}
