package catalog

import "sync"

// Index holds the last fetched catalog keyed by product id. Add-to-cart
// resolves a product through it instead of refetching the record the grid
// was just rendered from.
type Index struct {
	mu   sync.RWMutex
	byID map[int]Product
}

func NewIndex() *Index {
	return &Index{byID: make(map[int]Product)}
}

// Put merges products into the index. Entries from earlier fetches remain
// resolvable until overwritten by a fresher record with the same id.
func (ix *Index) Put(products []Product) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, p := range products {
		ix.byID[p.ID] = p
	}
}

func (ix *Index) Get(id int) (Product, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p, ok := ix.byID[id]
	return p, ok
}
