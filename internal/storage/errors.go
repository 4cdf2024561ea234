// Typed errors shared across the storage services.

package storage

import "fmt"

// DuplicateError reports a create/update that would violate a
// uniqueness constraint. Nothing was mutated when it is returned.
type DuplicateError struct {
	Field string // "kode_barang" or "nomor_induk"
	Value string // the offending value
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// NotFoundError reports an operation targeting an ID absent from its
// table.
type NotFoundError struct {
	Resource string // "barang", "ruangan", "peminjam", "transaksi"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports an operation that is valid on its own but
// illegal in the dataset's current state: checking out an unavailable
// asset, completing an already-completed transaction, or deleting an
// asset that an open transaction still references.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}
