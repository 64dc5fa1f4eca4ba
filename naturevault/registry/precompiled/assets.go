package registry

import (
	"github.com/NatureVault-project/naturevault-core/naturevault/fhe"
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// AssetRecord is one provider submission: four opaque ciphertext handles plus
// the submitting address. Records are immutable once written.
type AssetRecord struct {
	EncArea         fhe.Ciphertext
	EncHealth       fhe.Ciphertext
	EncCarbon       fhe.Ciphertext
	EncBiodiversity fhe.Ciphertext
	Submitter       common.Address
}

// AssetsReader reads asset records by (batch id, insertion index).
type AssetsReader struct {
	storage     *contract_storage.StorageReaderWrapper
	asset_field []byte
}

func (self *AssetsReader) Init(stor *contract_storage.StorageReaderWrapper, prefix []byte) {
	self.storage = stor
	self.asset_field = prefix
}

// GetAsset returns nil when no record exists at (batch_id, index).
func (self *AssetsReader) GetAsset(batch_id uint64, index uint64) (record *AssetRecord) {
	self.storage.Get(self.record_key(batch_id, index), func(bytes []byte) {
		record = new(AssetRecord)
		if err := rlp.DecodeBytes(bytes, record); err != nil {
			// This should never happen
			panic("unable to decode asset record rlp")
		}
	})
	return
}

func (self *AssetsReader) record_key(batch_id uint64, index uint64) *common.Hash {
	return contract_storage.Stor_k_1(self.asset_field,
		contract_storage.Uint64ToBytes(batch_id), contract_storage.Uint64ToBytes(index))
}

// Assets adds appends on top of AssetsReader.
type Assets struct {
	AssetsReader
	storage *contract_storage.StorageWrapper
}

func (self *Assets) Init(stor *contract_storage.StorageWrapper, prefix []byte) {
	self.storage = stor
	self.AssetsReader.Init(&stor.StorageReaderWrapper, prefix)
}

// SaveAsset writes a record at a not-yet-occupied (batch_id, index) slot.
func (self *Assets) SaveAsset(batch_id uint64, index uint64, record *AssetRecord) {
	// This could happen only due to some serious logic bug
	if self.GetAsset(batch_id, index) != nil {
		panic("asset record slot already occupied")
	}
	bytes, err := rlp.EncodeToBytes(record)
	if err != nil {
		panic(err)
	}
	self.storage.Put(self.record_key(batch_id, index), bytes)
}
