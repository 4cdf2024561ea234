package storage

// StatsService computes derived counts over current table state. No
// caching; every call is a fresh full scan, which is fine at the
// human-scale dataset sizes this system holds.
type StatsService struct {
	db *Database
}

// Stats returns the dashboard counters.
func (s *StatsService) Stats() (DashboardStats, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var stats DashboardStats

	barang, err := s.db.barang.Read()
	if err != nil {
		return stats, err
	}
	stats.TotalBarang = len(barang)
	for i := range barang {
		if barang[i].Status == StatusBarangTersedia {
			stats.BarangTersedia++
		}
	}

	ruangan, err := s.db.ruangan.Read()
	if err != nil {
		return stats, err
	}
	stats.TotalRuangan = len(ruangan)
	for i := range ruangan {
		if ruangan[i].Status == StatusRuanganTersedia {
			stats.RuanganTersedia++
		}
	}

	transaksi, err := s.db.transaksi.Read()
	if err != nil {
		return stats, err
	}
	for i := range transaksi {
		if transaksi[i].Status == StatusTransaksiDipinjam {
			stats.TransaksiAktif++
		}
	}
	return stats, nil
}
