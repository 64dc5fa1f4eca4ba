package leveldb

import (
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"

	"github.com/ethereum/go-ethereum/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

type Factory struct {
	File    string `json:"file"`
	Cache   int    `json:"cache"`
	Handles int    `json:"handles"`
}

func (self *Factory) NewInstance() (contract_storage.Database, error) {
	cache, handles := self.Cache, self.Handles
	if cache < 16 {
		cache = 16
	}
	if handles < 16 {
		handles = 16
	}
	ldb, err := leveldb.OpenFile(self.File, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, err
	}
	return &Database{ldb: ldb}, nil
}

// Database is a goleveldb-backed contract-storage backend.
type Database struct {
	ldb *leveldb.DB
}

func (self *Database) Get(addr *common.Address, key *common.Hash, cb func([]byte)) {
	val, err := self.ldb.Get(cell_key(addr, key), nil)
	if err == leveldb.ErrNotFound {
		return
	}
	if err != nil {
		panic(err)
	}
	if len(val) != 0 {
		cb(val)
	}
}

func (self *Database) Put(addr *common.Address, key *common.Hash, value []byte) {
	var err error
	if len(value) == 0 {
		err = self.ldb.Delete(cell_key(addr, key), nil)
	} else {
		err = self.ldb.Put(cell_key(addr, key), value, nil)
	}
	if err != nil {
		panic(err)
	}
}

func (self *Database) Close() error {
	return self.ldb.Close()
}

func cell_key(addr *common.Address, key *common.Hash) []byte {
	return append(addr.Bytes(), key.Bytes()...)
}
