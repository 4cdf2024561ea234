package storage

// RuanganService is the repository for borrowable rooms. Rooms carry
// no uniqueness constraint and no condition rating.
type RuanganService struct {
	db *Database
}

// CreateRuangan are the fields of a new room.
type CreateRuangan struct {
	Nama string
}

// UpdateRuangan lists the fields a repository update may change.
type UpdateRuangan struct {
	Nama *string
}

// List returns all rooms.
func (s *RuanganService) List() ([]Ruangan, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.ruangan.Read()
}

// Get returns one room by ID.
func (s *RuanganService) Get(id string) (*Ruangan, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rows, err := s.db.ruangan.Read()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "ruangan", ID: id}
}

// Create registers a new room.
func (s *RuanganService) Create(req CreateRuangan) (*Ruangan, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.ruangan.Read()
	if err != nil {
		return nil, err
	}
	r := Ruangan{
		ID:     newID(),
		Nama:   req.Nama,
		Status: StatusRuanganTersedia,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.ruangan.Write(append(rows, r)); err != nil {
		return nil, err
	}
	return &r, nil
}

// Update changes the supplied fields of an existing room.
func (s *RuanganService) Update(id string, req UpdateRuangan) (*Ruangan, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.ruangan.Read()
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
		return nil, &NotFoundError{Resource: "ruangan", ID: id}
	}
	if req.Nama != nil {
		rows[idx].Nama = *req.Nama
	}
	if err := rows[idx].Validate(); err != nil {
		return nil, err
	}
	if err := s.db.ruangan.Write(rows); err != nil {
		return nil, err
	}
	r := rows[idx]
	return &r, nil
}

// Delete removes a room unless an open transaction still references it.
func (s *RuanganService) Delete(id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.ruangan.Read()
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
		return &NotFoundError{Resource: "ruangan", ID: id}
	}

	onLoan, err := s.db.referencedByOpenTransaksi(func(d *DetailTransaksi) bool {
		return d.IDRuangan != nil && *d.IDRuangan == id
	})
	if err != nil {
		return err
	}
	if onLoan {
		return &ConflictError{Reason: "ruangan is on loan in an open transaction"}
	}

	return s.db.ruangan.Write(append(rows[:idx], rows[idx+1:]...))
}
