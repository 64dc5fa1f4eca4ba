package registry

import (
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Batches storage fields keys - relative to the prefix from Init function
var (
	field_batches_current = []byte{0}
	field_batches_info    = []byte{1}
)

type BatchInfo struct {
	Open       bool
	AssetCount uint64
}

// BatchesReader reads the batch ledger: the current batch id and per-batch
// open flag / asset count.
type BatchesReader struct {
	storage           *contract_storage.StorageReaderWrapper
	current_batch_key *common.Hash
	batch_info_field  []byte
}

func (self *BatchesReader) Init(stor *contract_storage.StorageReaderWrapper, prefix []byte) {
	self.storage = stor
	self.current_batch_key = contract_storage.Stor_k_1(prefix, field_batches_current)
	self.batch_info_field = append(prefix, field_batches_info...)
}

// CurrentBatchId returns the highest batch id created so far, 0 before the
// first batch is opened.
func (self *BatchesReader) CurrentBatchId() (ret uint64) {
	self.storage.Get(self.current_batch_key, func(bytes []byte) {
		ret = contract_storage.BytesToUint64(bytes)
	})
	return
}

// GetBatchInfo returns nil for a batch id that was never opened.
func (self *BatchesReader) GetBatchInfo(batch_id uint64) (info *BatchInfo) {
	key := contract_storage.Stor_k_1(self.batch_info_field, contract_storage.Uint64ToBytes(batch_id))
	self.storage.Get(key, func(bytes []byte) {
		info = new(BatchInfo)
		if err := rlp.DecodeBytes(bytes, info); err != nil {
			// This should never happen
			panic("unable to decode batch info rlp")
		}
	})
	return
}

// Batches adds ledger mutations on top of BatchesReader.
type Batches struct {
	BatchesReader
	storage *contract_storage.StorageWrapper
}

func (self *Batches) Init(stor *contract_storage.StorageWrapper, prefix []byte) {
	self.storage = stor
	self.BatchesReader.Init(&stor.StorageReaderWrapper, prefix)
}

// OpenNew increments the current batch id and marks the new batch open with
// zero assets. Batch ids therefore start at 1 and only ever grow.
func (self *Batches) OpenNew() uint64 {
	batch_id := self.CurrentBatchId() + 1
	self.storage.Put(self.current_batch_key, contract_storage.Uint64ToBytes(batch_id))
	self.SaveInfo(batch_id, &BatchInfo{Open: true})
	return batch_id
}

func (self *Batches) SaveInfo(batch_id uint64, info *BatchInfo) {
	key := contract_storage.Stor_k_1(self.batch_info_field, contract_storage.Uint64ToBytes(batch_id))
	bytes, err := rlp.EncodeToBytes(info)
	if err != nil {
		panic(err)
	}
	self.storage.Put(key, bytes)
}
