package storage

import (
	"errors"
	"testing"
)

func TestCheckoutAndComplete(t *testing.T) {
	db := newTestDB(t)

	b, err := db.Barang.Create(CreateBarang{Nama: "Proyektor", Kode: "PRJ-01", Kondisi: KondisiBaik, Deskripsi: "Lengkap"})
	if err != nil {
		t.Fatal(err)
	}
	r, err := db.Ruangan.Create(CreateRuangan{Nama: "Lab IPA"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := db.Peminjam.Create(CreatePeminjam{Nama: "Ibu Sari", Tipe: TipePeminjamGuru, NomorInduk: "196512"})
	if err != nil {
		t.Fatal(err)
	}

	trans, err := db.Transaksi.Checkout(p.ID, "2026-09-08", []CartItem{
		{Jenis: JenisBarang, ID: b.ID},
		{Jenis: JenisRuangan, ID: r.ID},
	})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if trans.Status != StatusTransaksiDipinjam {
		t.Errorf("Expected open transaction, got %s", trans.Status)
	}
	if trans.TanggalKembaliAktual != nil {
		t.Error("Expected no actual return date on an open transaction")
	}
	if trans.TanggalPinjam == "" {
		t.Error("Expected checkout timestamp")
	}

	// Both targets flipped to Dipinjam.
	gotB, err := db.Barang.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotB.Status != StatusBarangDipinjam {
		t.Errorf("Expected item Dipinjam, got %s", gotB.Status)
	}
	gotR, err := db.Ruangan.Get(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotR.Status != StatusRuanganDipinjam {
		t.Errorf("Expected room Dipinjam, got %s", gotR.Status)
	}

	// One line per cart entry, with the polymorphic references and
	// checkout snapshots filled per kind.
	lines, err := db.Transaksi.Lines(trans.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	var itemLine, roomLine *DetailTransaksi
	for i := range lines {
		switch {
		case lines[i].IDBarang != nil:
			itemLine = &lines[i]
		case lines[i].IDRuangan != nil:
			roomLine = &lines[i]
		}
	}
	if itemLine == nil || roomLine == nil {
		t.Fatalf("Expected one item line and one room line: %#v", lines)
	}
	if itemLine.IDRuangan != nil {
		t.Error("Item line must not reference a room")
	}
	if itemLine.KondisiSebelum == nil || *itemLine.KondisiSebelum != string(KondisiBaik) {
		t.Errorf("Expected before-condition snapshot Baik, got %v", itemLine.KondisiSebelum)
	}
	if itemLine.SnapshotNamaBarang != "Proyektor" || itemLine.SnapshotKodeBarang != "PRJ-01" {
		t.Errorf("Missing item snapshots: %#v", itemLine)
	}
	if roomLine.IDBarang != nil || roomLine.KondisiSebelum != nil {
		t.Errorf("Room line must not carry item fields: %#v", roomLine)
	}
	if roomLine.SnapshotNamaRuangan != "Lab IPA" {
		t.Errorf("Missing room snapshot: %#v", roomLine)
	}

	// A second borrower cannot take the same item while it is out.
	p2, err := db.Peminjam.Create(CreatePeminjam{Nama: "Budi", Tipe: TipePeminjamSiswa, NomorInduk: "12345"})
	if err != nil {
		t.Fatal(err)
	}
	var conflict *ConflictError
	if _, err := db.Transaksi.Checkout(p2.ID, "2026-09-09", []CartItem{{Jenis: JenisBarang, ID: b.ID}}); !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError for unavailable item, got %v", err)
	}

	// Return: item came back lightly damaged, room is just "OK".
	done, err := db.Transaksi.Complete(trans.ID, []ReturnItem{
		{IDDetail: itemLine.ID, KondisiSesudah: string(KondisiRusakRingan), Keterangan: "Tutup lensa hilang"},
		{IDDetail: roomLine.ID, KondisiSesudah: "OK", Keterangan: "-"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if done.Status != StatusTransaksiSelesai {
		t.Errorf("Expected Selesai, got %s", done.Status)
	}
	if done.TanggalKembaliAktual == nil || *done.TanggalKembaliAktual == "" {
		t.Error("Expected actual return timestamp")
	}

	// Availability restored, condition and description written back.
	gotB, err = db.Barang.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotB.Status != StatusBarangTersedia {
		t.Errorf("Expected item Tersedia after return, got %s", gotB.Status)
	}
	if gotB.Kondisi != KondisiRusakRingan {
		t.Errorf("Expected condition written back, got %s", gotB.Kondisi)
	}
	if gotB.Deskripsi != "Tutup lensa hilang" {
		t.Errorf("Expected remark written to description, got %q", gotB.Deskripsi)
	}
	gotR, err = db.Ruangan.Get(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotR.Status != StatusRuanganTersedia {
		t.Errorf("Expected room Tersedia after return, got %s", gotR.Status)
	}

	// Line return fields recorded.
	lines, err = db.Transaksi.Lines(trans.ID)
	if err != nil {
		t.Fatal(err)
	}
	for i := range lines {
		if lines[i].KondisiSesudah == nil {
			t.Errorf("Expected after-condition on line %s", lines[i].ID)
		}
	}

	// Completion happens at most once.
	if _, err := db.Transaksi.Complete(trans.ID, nil); !errors.As(err, &conflict) {
		t.Errorf("Expected ConflictError on double completion, got %v", err)
	}
}

func TestCheckoutValidation(t *testing.T) {
	db := newTestDB(t)

	b, err := db.Barang.Create(CreateBarang{Nama: "Laptop", Kode: "LPT-01", Kondisi: KondisiBaik})
	if err != nil {
		t.Fatal(err)
	}
	p, err := db.Peminjam.Create(CreatePeminjam{Nama: "Budi", Tipe: TipePeminjamSiswa, NomorInduk: "12345"})
	if err != nil {
		t.Fatal(err)
	}

	// Empty cart.
	if _, err := db.Transaksi.Checkout(p.ID, "2026-09-08", nil); err == nil {
		t.Error("Expected error for empty cart")
	}

	// Unknown borrower.
	var notFound *NotFoundError
	if _, err := db.Transaksi.Checkout("nope", "2026-09-08", []CartItem{{Jenis: JenisBarang, ID: b.ID}}); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError for unknown borrower, got %v", err)
	}

	// Unknown cart target. A failed checkout must leave nothing behind.
	if _, err := db.Transaksi.Checkout(p.ID, "2026-09-08", []CartItem{{Jenis: JenisBarang, ID: "nope"}}); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError for unknown item, got %v", err)
	}
	rows, err := db.Transaksi.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("Failed checkout must not persist a transaction, got %d", len(rows))
	}
	gotB, err := db.Barang.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotB.Status != StatusBarangTersedia {
		t.Errorf("Failed checkout must not flip availability, got %s", gotB.Status)
	}
}

func TestCompleteEdgeCases(t *testing.T) {
	db := newTestDB(t)

	var notFound *NotFoundError
	if _, err := db.Transaksi.Complete("nope", nil); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError for unknown transaction, got %v", err)
	}

	b, err := db.Barang.Create(CreateBarang{Nama: "Kamera", Kode: "KMR-01", Kondisi: KondisiBaik, Deskripsi: "Asli"})
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
	lines, err := db.Transaksi.Lines(trans.ID)
	if err != nil {
		t.Fatal(err)
	}

	// The "-" placeholder remark is stored on the line but never
	// overwrites the item description; unknown line IDs are skipped.
	done, err := db.Transaksi.Complete(trans.ID, []ReturnItem{
		{IDDetail: lines[0].ID, KondisiSesudah: string(KondisiBaik), Keterangan: "-"},
		{IDDetail: "unknown-line", KondisiSesudah: string(KondisiBaik), Keterangan: "x"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if done.Status != StatusTransaksiSelesai {
		t.Errorf("Expected Selesai, got %s", done.Status)
	}
	gotB, err := db.Barang.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotB.Deskripsi != "Asli" {
		t.Errorf("Placeholder remark must not overwrite description, got %q", gotB.Deskripsi)
	}
	lines, err = db.Transaksi.Lines(trans.ID)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0].Keterangan == nil || *lines[0].Keterangan != "-" {
		t.Errorf("Expected placeholder remark stored on line, got %v", lines[0].Keterangan)
	}
}

func TestSnapshotImmutability(t *testing.T) {
	db := newTestDB(t)

	b, err := db.Barang.Create(CreateBarang{Nama: "Printer", Kode: "PRN-01", Kondisi: KondisiBaik})
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
	if _, err := db.Transaksi.Complete(trans.ID, nil); err != nil {
		t.Fatal(err)
	}

	// Renaming the item later must not rewrite the historical line.
	nama := "Printer Baru"
	kode := "PRN-99"
	if _, err := db.Barang.Update(b.ID, UpdateBarang{Nama: &nama, Kode: &kode}); err != nil {
		t.Fatal(err)
	}
	lines, err := db.Transaksi.Lines(trans.ID)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0].SnapshotNamaBarang != "Printer" || lines[0].SnapshotKodeBarang != "PRN-01" {
		t.Errorf("Snapshots must be immutable: %#v", lines[0])
	}
}

func TestTransaksiListOrder(t *testing.T) {
	db := newTestDB(t)

	p, err := db.Peminjam.Create(CreatePeminjam{Nama: "Budi", Tipe: TipePeminjamSiswa, NomorInduk: "12345"})
	if err != nil {
		t.Fatal(err)
	}

	// Import gives control over the checkout dates.
	older := ImportRiwayat{
		IDPeminjam:            p.ID,
		TanggalPinjam:         "2026-01-05",
		TanggalRencanaKembali: "2026-01-06",
		TanggalKembaliAktual:  "2026-01-06",
		Items:                 []ImportRiwayatItem{{Jenis: JenisBarang, ID: "x", SnapshotNama: "A", SnapshotKode: "A-1"}},
	}
	newer := older
	newer.TanggalPinjam = "2026-03-01"
	if _, err := db.Transaksi.ImportHistory(older); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Transaksi.ImportHistory(newer); err != nil {
		t.Fatal(err)
	}

	rows, err := db.Transaksi.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(rows))
	}
	if rows[0].TanggalPinjam != "2026-03-01" {
		t.Errorf("Expected newest first, got %s", rows[0].TanggalPinjam)
	}
}

func TestImportHistory(t *testing.T) {
	db := newTestDB(t)

	b, err := db.Barang.Create(CreateBarang{Nama: "Speaker", Kode: "SPK-01", Kondisi: KondisiBaik})
	if err != nil {
		t.Fatal(err)
	}
	p, err := db.Peminjam.Create(CreatePeminjam{Nama: "Budi", Tipe: TipePeminjamSiswa, NomorInduk: "12345"})
	if err != nil {
		t.Fatal(err)
	}

	req := ImportRiwayat{
		ID:                    "hist-1",
		IDPeminjam:            p.ID,
		TanggalPinjam:         "2025-11-10",
		TanggalRencanaKembali: "2025-11-12",
		TanggalKembaliAktual:  "2025-11-12",
		Items: []ImportRiwayatItem{{
			Jenis:          JenisBarang,
			ID:             b.ID,
			KondisiSebelum: string(KondisiBaik),
			KondisiSesudah: string(KondisiBaik),
			Keterangan:     "-",
			SnapshotNama:   "Speaker",
			SnapshotKode:   "SPK-01",
		}},
	}
	inserted, err := db.Transaksi.ImportHistory(req)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !inserted {
		t.Fatal("Expected insert on first import")
	}

	got, err := db.Transaksi.Get("hist-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusTransaksiSelesai {
		t.Errorf("Imported history must be completed, got %s", got.Status)
	}

	// History import never touches availability.
	gotB, err := db.Barang.Get(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotB.Status != StatusBarangTersedia {
		t.Errorf("Import must not put items on loan, got %s", gotB.Status)
	}

	// Re-importing the same ID is a no-op.
	inserted, err = db.Transaksi.ImportHistory(req)
	if err != nil {
		t.Fatal(err)
	}
	if inserted {
		t.Error("Expected duplicate import to be skipped")
	}
	rows, err := db.Transaksi.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected 1 transaction after duplicate import, got %d", len(rows))
	}
}
