package registry

import (
	"time"

	"github.com/NatureVault-project/naturevault-core/naturevault/fhe"
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"
	"github.com/NatureVault-project/naturevault-core/naturevault/util/asserts"

	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	// ChainID identifies the deployment; it is mixed into aggregate
	// commitments so a commitment from one instance cannot be replayed
	// against another.
	ChainID uint64

	GenesisOwner     common.Address
	InitialProviders []common.Address

	// Global cooldown applied independently to submissions and decryption
	// requests, in seconds.
	CooldownSeconds uint64
}

// Clock supplies the timestamps cooldown guards compare against.
type Clock interface {
	Now() uint64
}

type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

type API struct {
	cfg Config
}

func (self *API) Init(cfg Config) *API {
	asserts.Holds(cfg.ChainID != 0, "chain id must be set")
	asserts.Holds(cfg.GenesisOwner != (common.Address{}), "genesis owner must be set")
	asserts.Holds(cfg.CooldownSeconds > 0, "cooldown must be non-zero")
	self.cfg = cfg
	return self
}

func (self *API) NewContract(storage contract_storage.Storage, oracle fhe.Oracle, scheme fhe.Scheme, clock Clock) *Contract {
	return new(Contract).Init(self.cfg, storage, oracle, scheme, clock)
}

func (self *API) NewReader(storage contract_storage.StorageReader) *Reader {
	return new(Reader).Init(storage)
}
