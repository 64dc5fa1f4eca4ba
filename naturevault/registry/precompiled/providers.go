package registry

import (
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"

	"github.com/ethereum/go-ethereum/common"
)

// ProvidersReader answers role-membership queries over the provider registry.
type ProvidersReader struct {
	provider_list contract_storage.AddressesIMapReader
}

func (self *ProvidersReader) Init(stor *contract_storage.StorageReaderWrapper, prefix []byte) {
	self.provider_list.Init(stor, prefix)
}

func (self *ProvidersReader) Exists(account *common.Address) bool {
	return self.provider_list.AccountExists(account)
}

func (self *ProvidersReader) GetCount() uint32 {
	return self.provider_list.GetCount()
}

func (self *ProvidersReader) GetProviders(start_idx uint32, count uint32) ([]common.Address, bool) {
	return self.provider_list.GetAccounts(start_idx, count)
}

// Providers groups all mutations of the provider role registry.
type Providers struct {
	ProvidersReader
	provider_list contract_storage.AddressesIMap
}

func (self *Providers) Init(stor *contract_storage.StorageWrapper, prefix []byte) {
	self.ProvidersReader.Init(&stor.StorageReaderWrapper, prefix)
	self.provider_list.Init(stor, prefix)
}

func (self *Providers) Add(account *common.Address) {
	self.provider_list.CreateAccount(account)
}

func (self *Providers) Remove(account *common.Address) {
	self.provider_list.RemoveAccount(account)
}
