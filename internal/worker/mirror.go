package worker

// MirrorEntry is the generator's local belief about one product's stock.
type MirrorEntry struct {
	Code  string
	Stock int64
}

// StockMirror is the optimistic per-pharmacy copy of catalog stock. It is
// owned by a single run and is not safe for concurrent use.
type StockMirror struct {
	pools map[string][]MirrorEntry
}

// NewStockMirror creates an empty mirror.
func NewStockMirror() *StockMirror {
	return &StockMirror{pools: make(map[string][]MirrorEntry)}
}

// Set replaces the pool of a pharmacy.
func (m *StockMirror) Set(pharmacyID string, entries []MirrorEntry) {
	m.pools[pharmacyID] = append([]MirrorEntry(nil), entries...)
}

// Pool returns a copy of the pharmacy pool.
func (m *StockMirror) Pool(pharmacyID string) []MirrorEntry {
	return append([]MirrorEntry(nil), m.pools[pharmacyID]...)
}

// Candidates returns the indexes of entries whose stock covers qty.
func (m *StockMirror) Candidates(pharmacyID string, qty int64) []int {
	var idx []int
	for i, e := range m.pools[pharmacyID] {
		if e.Stock >= qty {
			idx = append(idx, i)
		}
	}
	return idx
}

// Entry returns the entry at idx of a pharmacy pool.
func (m *StockMirror) Entry(pharmacyID string, idx int) MirrorEntry {
	return m.pools[pharmacyID][idx]
}

// Decrement subtracts qty from an entry and drops it once exhausted.
func (m *StockMirror) Decrement(pharmacyID string, idx int, qty int64) {
	pool := m.pools[pharmacyID]
	if idx < 0 || idx >= len(pool) {
		return
	}
	pool[idx].Stock -= qty
	if pool[idx].Stock <= 0 {
		m.pools[pharmacyID] = append(pool[:idx], pool[idx+1:]...)
	}
}
