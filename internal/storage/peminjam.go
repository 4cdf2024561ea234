package storage

// PeminjamService is the repository for registered borrowers. The
// registration number (NIP/NISN) is unique across all borrowers.
type PeminjamService struct {
	db *Database
}

// CreatePeminjam are the fields of a new borrower.
type CreatePeminjam struct {
	Nama       string
	Tipe       TipePeminjam
	NomorInduk string
}

// UpdatePeminjam lists the fields a repository update may change.
type UpdatePeminjam struct {
	Nama       *string
	Tipe       *TipePeminjam
	NomorInduk *string
}

// List returns all borrowers.
func (s *PeminjamService) List() ([]Peminjam, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.peminjam.Read()
}

// Get returns one borrower by ID.
func (s *PeminjamService) Get(id string) (*Peminjam, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rows, err := s.db.peminjam.Read()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "peminjam", ID: id}
}

// Create registers a new borrower. A duplicate registration number
// fails with DuplicateError and leaves the table unchanged.
func (s *PeminjamService) Create(req CreatePeminjam) (*Peminjam, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.peminjam.Read()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].NomorInduk == req.NomorInduk {
			return nil, &DuplicateError{Field: "nomor_induk", Value: req.NomorInduk}
		}
	}

	p := Peminjam{
		ID:         newID(),
		Nama:       req.Nama,
		Tipe:       req.Tipe,
		NomorInduk: req.NomorInduk,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.peminjam.Write(append(rows, p)); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update changes the supplied fields of an existing borrower. Changing
// the registration number re-checks uniqueness against all other
// borrowers.
func (s *PeminjamService) Update(id string, req UpdatePeminjam) (*Peminjam, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.peminjam.Read()
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
		return nil, &NotFoundError{Resource: "peminjam", ID: id}
	}

	if req.NomorInduk != nil && *req.NomorInduk != rows[idx].NomorInduk {
		for i := range rows {
			if i != idx && rows[i].NomorInduk == *req.NomorInduk {
				return nil, &DuplicateError{Field: "nomor_induk", Value: *req.NomorInduk}
			}
		}
		rows[idx].NomorInduk = *req.NomorInduk
	}
	if req.Nama != nil {
		rows[idx].Nama = *req.Nama
	}
	if req.Tipe != nil {
		rows[idx].Tipe = *req.Tipe
	}
	if err := rows[idx].Validate(); err != nil {
		return nil, err
	}
	if err := s.db.peminjam.Write(rows); err != nil {
		return nil, err
	}
	p := rows[idx]
	return &p, nil
}

// Delete removes a borrower. Transactions keep their id_peminjam
// reference; history views resolve it best-effort.
func (s *PeminjamService) Delete(id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.peminjam.Read()
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
		return &NotFoundError{Resource: "peminjam", ID: id}
	}
	return s.db.peminjam.Write(append(rows[:idx], rows[idx+1:]...))
}
