package registry_sol

import (
	"github.com/ethereum/go-ethereum/common"
)

// ABI of the registry client interface. Events and methods here define the
// external surface; the Go structs below mirror the method args so dispatch
// code can unpack into them.
const NatureVaultRegistryClientMetaData = `[
	{"type":"function","name":"transferOwnership","inputs":[{"name":"newOwner","type":"address"}],"outputs":[]},
	{"type":"function","name":"setProvider","inputs":[{"name":"account","type":"address"},{"name":"enabled","type":"bool"}],"outputs":[]},
	{"type":"function","name":"setPaused","inputs":[{"name":"paused","type":"bool"}],"outputs":[]},
	{"type":"function","name":"setCooldownSeconds","inputs":[{"name":"cooldownSeconds","type":"uint64"}],"outputs":[]},
	{"type":"function","name":"openNewBatch","inputs":[],"outputs":[{"name":"batchId","type":"uint64"}]},
	{"type":"function","name":"closeBatch","inputs":[{"name":"batchId","type":"uint64"}],"outputs":[]},
	{"type":"function","name":"submitAsset","inputs":[{"name":"encArea","type":"bytes"},{"name":"encHealth","type":"bytes"},{"name":"encCarbon","type":"bytes"},{"name":"encBiodiversity","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"requestBatchAggregateDecryption","inputs":[{"name":"batchId","type":"uint64"}],"outputs":[{"name":"requestId","type":"bytes32"}]},
	{"type":"function","name":"deliverDecryption","inputs":[{"name":"requestId","type":"bytes32"},{"name":"cleartexts","type":"bytes"},{"name":"proof","type":"bytes"}],"outputs":[]},

	{"type":"event","name":"OwnershipTransferred","inputs":[{"name":"previousOwner","type":"address","indexed":true},{"name":"newOwner","type":"address","indexed":true}]},
	{"type":"event","name":"ProviderAdded","inputs":[{"name":"account","type":"address","indexed":true}]},
	{"type":"event","name":"ProviderRemoved","inputs":[{"name":"account","type":"address","indexed":true}]},
	{"type":"event","name":"Paused","inputs":[]},
	{"type":"event","name":"Unpaused","inputs":[]},
	{"type":"event","name":"CooldownChanged","inputs":[{"name":"cooldownSeconds","type":"uint64"}]},
	{"type":"event","name":"BatchOpened","inputs":[{"name":"batchId","type":"uint64","indexed":true}]},
	{"type":"event","name":"BatchClosed","inputs":[{"name":"batchId","type":"uint64","indexed":true}]},
	{"type":"event","name":"AssetSubmitted","inputs":[{"name":"submitter","type":"address","indexed":true},{"name":"batchId","type":"uint64","indexed":true},{"name":"assetIndex","type":"uint64"}]},
	{"type":"event","name":"DecryptionRequested","inputs":[{"name":"requestId","type":"bytes32","indexed":true},{"name":"batchId","type":"uint64","indexed":true}]},
	{"type":"event","name":"DecryptionCompleted","inputs":[{"name":"requestId","type":"bytes32","indexed":true},{"name":"batchId","type":"uint64","indexed":true},{"name":"totalArea","type":"uint256"},{"name":"totalCarbon","type":"uint256"}]}
]`

type TransferOwnershipArgs struct {
	NewOwner common.Address
}

type SetProviderArgs struct {
	Account common.Address
	Enabled bool
}

type SetPausedArgs struct {
	Paused bool
}

type SetCooldownSecondsArgs struct {
	CooldownSeconds uint64
}

type CloseBatchArgs struct {
	BatchId uint64
}

type SubmitAssetArgs struct {
	EncArea         []byte
	EncHealth       []byte
	EncCarbon       []byte
	EncBiodiversity []byte
}

type RequestBatchAggregateDecryptionArgs struct {
	BatchId uint64
}

type DeliverDecryptionArgs struct {
	RequestId  [32]byte
	Cleartexts []byte
	Proof      []byte
}
