package contract_storage

import (
	"github.com/NatureVault-project/naturevault-core/naturevault/util/keccak256"

	"github.com/ethereum/go-ethereum/common"
)

// StorageReader reads raw per-account storage cells from a backend.
type StorageReader interface {
	Get(addr *common.Address, key *common.Hash, cb func([]byte))
}

// StorageWriter writes raw per-account storage cells to a backend.
type StorageWriter interface {
	Put(addr *common.Address, key *common.Hash, value []byte)
}

type Storage interface {
	StorageReader
	StorageWriter
}

// Database is a closable Storage backend, produced by the db factories.
type Database interface {
	Storage
	Close() error
}

// StorageReaderWrapper binds a reader to one contract account and caches
// reads for the duration of a call.
type StorageReaderWrapper struct {
	StorageReader
	addr  common.Address
	cache map[common.Hash][]byte
}

func (self *StorageReaderWrapper) Init(addr *common.Address, backend StorageReader) *StorageReaderWrapper {
	self.addr = *addr
	self.StorageReader = backend
	return self
}

func (self *StorageReaderWrapper) ClearCache() {
	self.cache = nil
}

func (self *StorageReaderWrapper) Get(k *common.Hash, cb func([]byte)) {
	if val, present := self.cache[*k]; present {
		if len(val) != 0 {
			cb(val)
		}
		return
	}
	self.StorageReader.Get(&self.addr, k, func(bytes []byte) {
		bytes = common.CopyBytes(bytes)
		self.cache_put(*k, bytes)
		cb(bytes)
	})
}

func (self *StorageReaderWrapper) cache_put(k common.Hash, v []byte) {
	if self.cache == nil {
		self.cache = make(map[common.Hash][]byte)
	}
	self.cache[k] = v
}

// StorageWrapper adds write-through on top of StorageReaderWrapper.
type StorageWrapper struct {
	StorageReaderWrapper
	StorageWriter
}

func (self *StorageWrapper) Init(addr *common.Address, storage Storage) *StorageWrapper {
	self.StorageReaderWrapper.Init(addr, storage)
	self.StorageWriter = storage
	return self
}

func (self *StorageWrapper) Put(k *common.Hash, v []byte) {
	self.cache_put(*k, v)
	self.StorageWriter.Put(&self.addr, k, v)
}

// Storage keys are keccak hashes of field prefixes plus record coordinates,
// so independent fields can never collide.
func Stor_k_1(parts ...[]byte) *common.Hash {
	return keccak256.Hash(parts...)
}

func Stor_k_2(parts ...[]byte) common.Hash {
	return keccak256.HashAndReturnByValue(parts...)
}
