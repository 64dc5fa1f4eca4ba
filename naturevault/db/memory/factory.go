package memory

import (
	"sync"

	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/ethereum/go-ethereum/common"
)

type Factory struct{}

func (self *Factory) NewInstance() (contract_storage.Database, error) {
	return new(Database).Init(), nil
}

// Database is an in-memory contract-storage backend. Cells live in a treemap
// keyed by account+slot so dumps and tests iterate in a stable order.
type Database struct {
	cells *treemap.Map
	mu    sync.RWMutex
}

func (self *Database) Init() *Database {
	self.cells = treemap.NewWithStringComparator()
	return self
}

func (self *Database) Get(addr *common.Address, key *common.Hash, cb func([]byte)) {
	self.mu.RLock()
	val, present := self.cells.Get(cell_key(addr, key))
	self.mu.RUnlock()
	if present {
		if bytes := val.([]byte); len(bytes) != 0 {
			cb(bytes)
		}
	}
}

func (self *Database) Put(addr *common.Address, key *common.Hash, value []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if len(value) == 0 {
		self.cells.Remove(cell_key(addr, key))
		return
	}
	self.cells.Put(cell_key(addr, key), common.CopyBytes(value))
}

func (self *Database) ForEach(cb func(key string, value []byte)) {
	self.mu.RLock()
	defer self.mu.RUnlock()
	self.cells.Each(func(k interface{}, v interface{}) {
		cb(k.(string), v.([]byte))
	})
}

func (self *Database) Close() error {
	return nil
}

func cell_key(addr *common.Address, key *common.Hash) string {
	return string(addr.Bytes()) + string(key.Bytes())
}
