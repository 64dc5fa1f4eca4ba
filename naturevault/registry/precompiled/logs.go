package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func check_log_error(err error) {
	if err != nil {
		panic("update logs methods to correspond ABI: " + err.Error())
	}
}

type Logs struct {
	Events map[string]abi.Event
}

func (self *Logs) Init(events map[string]abi.Event) *Logs {
	self.Events = events
	return self
}

// make_log builds one log record: topic 0 is the event id, further topics are
// the indexed args, non-indexed args are ABI-packed into the data section.
// Types here must stay in sync with the client metadata in ../solidity.
func (self *Logs) make_log(name string, indexed []interface{}, data ...interface{}) types.Log {
	event, known := self.Events[name]
	if !known {
		panic("unknown event: " + name)
	}

	topics := []common.Hash{event.ID}
	if len(indexed) != 0 {
		indexed_topics, err := abi.MakeTopics(indexed)
		check_log_error(err)
		topics = append(topics, indexed_topics[0]...)
	}

	packed, err := event.Inputs.NonIndexed().Pack(data...)
	check_log_error(err)

	return types.Log{Address: *registry_contract_address, Topics: topics, Data: packed}
}

// event OwnershipTransferred(address indexed previousOwner, address indexed newOwner);
func (self *Logs) MakeOwnershipTransferredLog(previous_owner, new_owner *common.Address) types.Log {
	return self.make_log("OwnershipTransferred", []interface{}{*previous_owner, *new_owner})
}

// event ProviderAdded(address indexed account);
func (self *Logs) MakeProviderAddedLog(account *common.Address) types.Log {
	return self.make_log("ProviderAdded", []interface{}{*account})
}

// event ProviderRemoved(address indexed account);
func (self *Logs) MakeProviderRemovedLog(account *common.Address) types.Log {
	return self.make_log("ProviderRemoved", []interface{}{*account})
}

// event Paused();
func (self *Logs) MakePausedLog() types.Log {
	return self.make_log("Paused", nil)
}

// event Unpaused();
func (self *Logs) MakeUnpausedLog() types.Log {
	return self.make_log("Unpaused", nil)
}

// event CooldownChanged(uint64 cooldownSeconds);
func (self *Logs) MakeCooldownChangedLog(cooldown_seconds uint64) types.Log {
	return self.make_log("CooldownChanged", nil, cooldown_seconds)
}

// event BatchOpened(uint64 indexed batchId);
func (self *Logs) MakeBatchOpenedLog(batch_id uint64) types.Log {
	return self.make_log("BatchOpened", []interface{}{batch_id})
}

// event BatchClosed(uint64 indexed batchId);
func (self *Logs) MakeBatchClosedLog(batch_id uint64) types.Log {
	return self.make_log("BatchClosed", []interface{}{batch_id})
}

// event AssetSubmitted(address indexed submitter, uint64 indexed batchId, uint64 assetIndex);
// The ciphertexts themselves are never carried in events.
func (self *Logs) MakeAssetSubmittedLog(submitter *common.Address, batch_id uint64, asset_index uint64) types.Log {
	return self.make_log("AssetSubmitted", []interface{}{*submitter, batch_id}, asset_index)
}

// event DecryptionRequested(bytes32 indexed requestId, uint64 indexed batchId);
func (self *Logs) MakeDecryptionRequestedLog(request_id *common.Hash, batch_id uint64) types.Log {
	return self.make_log("DecryptionRequested", []interface{}{*request_id, batch_id})
}

// event DecryptionCompleted(bytes32 indexed requestId, uint64 indexed batchId, uint256 totalArea, uint256 totalCarbon);
// The sole point where plaintext values become observable.
func (self *Logs) MakeDecryptionCompletedLog(request_id *common.Hash, batch_id uint64, total_area, total_carbon *big.Int) types.Log {
	return self.make_log("DecryptionCompleted", []interface{}{*request_id, batch_id}, total_area, total_carbon)
}
