package contract_storage

import (
	"github.com/ethereum/go-ethereum/common"
)

type AddressesIMapReader struct {
	addresses IterableMapReader
}

func (self *AddressesIMapReader) Init(stor *StorageReaderWrapper, prefix []byte) {
	self.addresses.Init(stor, prefix)
}

func (self *AddressesIMapReader) AccountExists(account *common.Address) bool {
	return self.addresses.ItemExists(account.Bytes())
}

func (self *AddressesIMapReader) GetAccounts(start_idx uint32, count uint32) (result []common.Address, end bool) {
	items, end := self.addresses.GetItems(start_idx, count)
	result = make([]common.Address, len(items))
	for idx := range items {
		result[idx] = common.BytesToAddress(items[idx])
	}
	return
}

func (self *AddressesIMapReader) GetCount() uint32 {
	return self.addresses.GetCount()
}

// AddressesIMap is an IterableMap wrapper for storing account addresses.
type AddressesIMap struct {
	AddressesIMapReader
	addresses IterableMap
}

func (self *AddressesIMap) Init(stor *StorageWrapper, prefix []byte) {
	self.AddressesIMapReader.Init(&stor.StorageReaderWrapper, prefix)
	self.addresses.Init(stor, prefix)
}

func (self *AddressesIMap) CreateAccount(account *common.Address) uint32 {
	return self.addresses.CreateItem(account.Bytes())
}

func (self *AddressesIMap) RemoveAccount(account *common.Address) uint32 {
	return self.addresses.RemoveItem(account.Bytes())
}
