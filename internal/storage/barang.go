package storage

// BarangService is the repository for borrowable items.
type BarangService struct {
	db *Database
}

// CreateBarang are the fields of a new item. Status is always
// Tersedia on creation; availability is only ever changed by the
// transaction workflow.
type CreateBarang struct {
	Nama      string
	Kode      string
	Kondisi   KondisiBarang
	Deskripsi string
}

// UpdateBarang lists the fields a repository update may change.
// Nil means unchanged. Availability is deliberately absent.
type UpdateBarang struct {
	Nama      *string
	Kode      *string
	Kondisi   *KondisiBarang
	Deskripsi *string
}

// List returns all items.
func (s *BarangService) List() ([]Barang, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.barang.Read()
}

// Get returns one item by ID.
func (s *BarangService) Get(id string) (*Barang, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rows, err := s.db.barang.Read()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "barang", ID: id}
}

// Create registers a new item. The inventory code must be unique
// across all items; violations fail with DuplicateError and leave the
// table unchanged.
func (s *BarangService) Create(req CreateBarang) (*Barang, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.barang.Read()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Kode == req.Kode {
			return nil, &DuplicateError{Field: "kode_barang", Value: req.Kode}
		}
	}

	b := Barang{
		ID:        newID(),
		Nama:      req.Nama,
		Kode:      req.Kode,
		Kondisi:   req.Kondisi,
		Deskripsi: req.Deskripsi,
		Status:    StatusBarangTersedia,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.barang.Write(append(rows, b)); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update changes the supplied fields of an existing item. Changing the
// code re-checks uniqueness against all other items.
func (s *BarangService) Update(id string, req UpdateBarang) (*Barang, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.barang.Read()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range rows {
		if rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Resource: "barang", ID: id}
	}

	if req.Kode != nil && *req.Kode != rows[idx].Kode {
		for i := range rows {
			if i != idx && rows[i].Kode == *req.Kode {
				return nil, &DuplicateError{Field: "kode_barang", Value: *req.Kode}
			}
		}
		rows[idx].Kode = *req.Kode
	}
	if req.Nama != nil {
		rows[idx].Nama = *req.Nama
	}
	if req.Kondisi != nil {
		rows[idx].Kondisi = *req.Kondisi
	}
	if req.Deskripsi != nil {
		rows[idx].Deskripsi = *req.Deskripsi
	}
	if err := rows[idx].Validate(); err != nil {
		return nil, err
	}
	if err := s.db.barang.Write(rows); err != nil {
		return nil, err
	}
	b := rows[idx]
	return &b, nil
}

// Delete removes an item. Items referenced by a line of an open
// transaction cannot be deleted; completed history keeps displaying
// deleted items through the line snapshots.
func (s *BarangService) Delete(id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.barang.Read()
	if err != nil {
		return err
	}
	idx := -1
	for i := range rows {
		if rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return &NotFoundError{Resource: "barang", ID: id}
	}

	onLoan, err := s.db.referencedByOpenTransaksi(func(d *DetailTransaksi) bool {
		return d.IDBarang != nil && *d.IDBarang == id
	})
	if err != nil {
		return err
	}
	if onLoan {
		return &ConflictError{Reason: "barang is on loan in an open transaction"}
	}

	return s.db.barang.Write(append(rows[:idx], rows[idx+1:]...))
}

// referencedByOpenTransaksi reports whether any line of a transaction
// with status Dipinjam matches the predicate. Caller must hold the
// database lock.
func (db *Database) referencedByOpenTransaksi(match func(*DetailTransaksi) bool) (bool, error) {
	transaksi, err := db.transaksi.Read()
	if err != nil {
		return false, err
	}
	open := make(map[string]struct{})
	for i := range transaksi {
		if transaksi[i].Status == StatusTransaksiDipinjam {
			open[transaksi[i].ID] = struct{}{}
		}
	}
	if len(open) == 0 {
		return false, nil
	}
	details, err := db.detail.Read()
	if err != nil {
		return false, err
	}
	for i := range details {
		if _, ok := open[details[i].IDTransaksi]; !ok {
			continue
		}
		if match(&details[i]) {
			return true, nil
		}
	}
	return false, nil
}
