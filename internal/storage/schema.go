package storage

import "github.com/sekolahkita/sipinjam/internal/jsondb"

// Schemas describes the column layout of every table in the store. It is
// used by the -dump-schema flag to document the on-disk format.
func Schemas() ([]jsondb.TableSchema, error) {
	var out []jsondb.TableSchema
	for _, f := range []func() (jsondb.TableSchema, error){
		func() (jsondb.TableSchema, error) { return jsondb.SchemaFor[Barang](keyBarang) },
		func() (jsondb.TableSchema, error) { return jsondb.SchemaFor[Ruangan](keyRuangan) },
		func() (jsondb.TableSchema, error) { return jsondb.SchemaFor[Peminjam](keyPeminjam) },
		func() (jsondb.TableSchema, error) { return jsondb.SchemaFor[Transaksi](keyTransaksi) },
		func() (jsondb.TableSchema, error) { return jsondb.SchemaFor[DetailTransaksi](keyDetail) },
	} {
		s, err := f()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
