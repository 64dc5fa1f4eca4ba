package registry

import (
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"

	"github.com/ethereum/go-ethereum/common"
)

// Reader is the read-only query surface consumed by the presentation layer
// and indexers. It observes the latest finalized state of the backing
// storage; all writes go through Contract.Run.
type Reader struct {
	storage   contract_storage.StorageReaderWrapper
	providers ProvidersReader
	batches   BatchesReader
	assets    AssetsReader
	requests  DecryptionRequestsReader
}

func (self *Reader) Init(storage contract_storage.StorageReader) *Reader {
	self.storage.Init(registry_contract_address, storage)
	self.providers.Init(&self.storage, field_providers)
	self.batches.Init(&self.storage, field_batches)
	self.assets.Init(&self.storage, field_assets)
	self.requests.Init(&self.storage, field_requests)
	return self
}

func (self *Reader) Owner() (ret common.Address) {
	self.storage.Get(stor_k(field_owner), func(bytes []byte) {
		ret = common.BytesToAddress(bytes)
	})
	return
}

func (self *Reader) IsProvider(account *common.Address) bool {
	return self.providers.Exists(account)
}

func (self *Reader) GetProvidersCount() uint32 {
	return self.providers.GetCount()
}

func (self *Reader) GetProviders(start_idx uint32, count uint32) ([]common.Address, bool) {
	return self.providers.GetProviders(start_idx, count)
}

func (self *Reader) IsPaused() (ret bool) {
	self.storage.Get(stor_k(field_paused), func([]byte) { ret = true })
	return
}

func (self *Reader) CooldownSeconds() (ret uint64) {
	self.storage.Get(stor_k(field_cooldown), func(bytes []byte) {
		ret = contract_storage.BytesToUint64(bytes)
	})
	return
}

func (self *Reader) CurrentBatchId() uint64 {
	return self.batches.CurrentBatchId()
}

func (self *Reader) GetBatchInfo(batch_id uint64) *BatchInfo {
	return self.batches.GetBatchInfo(batch_id)
}

// GetAsset exposes the raw ciphertext handles and the submitting address of
// one record, never any plaintext.
func (self *Reader) GetAsset(batch_id uint64, index uint64) *AssetRecord {
	return self.assets.GetAsset(batch_id, index)
}

func (self *Reader) GetRequest(request_id *common.Hash) *RequestContext {
	return self.requests.GetRequest(request_id)
}

// GetFinalizedTotals returns the published plaintext aggregates of a
// completed request, nil while the request is outstanding.
func (self *Reader) GetFinalizedTotals(request_id *common.Hash) *FinalizedTotals {
	return self.requests.GetFinalizedTotals(request_id)
}
