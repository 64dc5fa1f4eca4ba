package registry

import (
	"strings"
	"sync"

	"github.com/NatureVault-project/naturevault-core/naturevault/fhe"
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"
	"github.com/NatureVault-project/naturevault-core/naturevault/util"

	registry_sol "github.com/NatureVault-project/naturevault-core/naturevault/registry/solidity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// This package implements the main REGISTRY contract
// Fixed contract address
var contract_address = common.HexToAddress("0x00000000000000000000000000000000000000EC")
var registry_contract_address = &contract_address

func ContractAddress() common.Address {
	return contract_address
}

// Contract methods error return values
var (
	ErrNotOwner             = util.ErrorString("caller is not the owner")
	ErrNotProvider          = util.ErrorString("caller is not a registered provider")
	ErrPaused               = util.ErrorString("registry is paused")
	ErrZeroAddress          = util.ErrorString("new owner is the zero address")
	ErrZeroCooldown         = util.ErrorString("cooldown must be non-zero")
	ErrCooldownNotElapsed   = util.ErrorString("cooldown not elapsed")
	ErrBatchClosedOrInvalid = util.ErrorString("batch closed or invalid")
	ErrInvalidBatchId       = util.ErrorString("invalid batch id")
	ErrInvalidCiphertext    = util.ErrorString("uninitialized ciphertext handle")
	ErrUnknownRequestId     = util.ErrorString("unknown request id")
	ErrReplayAttempt        = util.ErrorString("request already processed")
	ErrStateMismatch        = util.ErrorString("aggregate state mismatch")
	ErrProofVerification    = util.ErrorString("proof verification failed")
	ErrMalformedCleartexts  = util.ErrorString("malformed cleartext payload")
	ErrUnknownMethod        = util.ErrorString("unknown method")
)

// Contract storage fields keys
var (
	field_initialized     = []byte{0}
	field_owner           = []byte{1}
	field_paused          = []byte{2}
	field_cooldown        = []byte{3}
	field_providers       = []byte{4}
	field_batches         = []byte{5}
	field_assets          = []byte{6}
	field_requests        = []byte{7}
	field_last_submission = []byte{8}
	field_last_request    = []byte{9}
)

// CallFrame carries the identity the execution environment authenticated for
// this call. The registry trusts it as-is.
type CallFrame struct {
	Caller common.Address
	Input  []byte
}

type ExecutionResult struct {
	Output       []byte
	Logs         []types.Log
	ExecutionErr util.ErrorString
}

// Main contract class. All five mutating operations run under one lock,
// restoring the single-writer total order the protocol assumes.
type Contract struct {
	cfg Config
	// current storage
	storage contract_storage.StorageWrapper
	// ABI of the contract
	Abi    abi.ABI
	logs   Logs
	oracle fhe.Oracle
	scheme fhe.Scheme
	clock  Clock

	providers  Providers
	batches    Batches
	assets     Assets
	aggregator Aggregator
	requests   DecryptionRequests

	journal []types.Log
	mu      sync.Mutex
}

// Initialize contract class. On first use of the backing storage this also
// applies genesis: owner, cooldown, initial providers and an auto-opened
// batch 1.
func (self *Contract) Init(cfg Config, storage contract_storage.Storage, oracle fhe.Oracle, scheme fhe.Scheme, clock Clock) *Contract {
	self.cfg = cfg
	self.storage.Init(registry_contract_address, storage)
	var err error
	self.Abi, err = abi.JSON(strings.NewReader(registry_sol.NatureVaultRegistryClientMetaData))
	util.PanicIfNotNil(err)
	self.logs.Init(self.Abi.Events)
	self.oracle = oracle
	self.scheme = scheme
	self.clock = clock

	self.providers.Init(&self.storage, field_providers)
	self.batches.Init(&self.storage, field_batches)
	self.assets.Init(&self.storage, field_assets)
	self.aggregator.Init(&self.assets, &self.batches, scheme)
	self.requests.Init(&self.storage, field_requests)

	self.applyGenesis()
	return self
}

func (self *Contract) applyGenesis() {
	initialized := false
	self.storage.Get(stor_k(field_initialized), func([]byte) { initialized = true })
	if initialized {
		return
	}
	self.storage.Put(stor_k(field_initialized), []byte{1})
	self.setOwner(&self.cfg.GenesisOwner)
	self.storage.Put(stor_k(field_cooldown), contract_storage.Uint64ToBytes(self.cfg.CooldownSeconds))
	for i := range self.cfg.InitialProviders {
		account := self.cfg.InitialProviders[i]
		if !self.providers.Exists(&account) {
			self.providers.Add(&account)
		}
	}
	self.batches.OpenNew()
}

// Run translates a call into a contract method and executes it. Either every
// effect of the call applies or none does: all guards precede all writes, and
// the log journal of a failed call is discarded.
func (self *Contract) Run(ctx CallFrame) (ret ExecutionResult) {
	defer util.LockUnlock(&self.mu)()
	self.journal = nil
	output, err := self.run(&ctx)
	if err != nil {
		self.journal = nil
		ret.ExecutionErr = util.ErrorString(err.Error())
		return
	}
	ret.Output = output
	ret.Logs = self.journal
	self.journal = nil
	return
}

func (self *Contract) run(ctx *CallFrame) ([]byte, error) {
	if len(ctx.Input) < 4 {
		return nil, ErrUnknownMethod
	}
	method, err := self.Abi.MethodById(ctx.Input[:4])
	if err != nil {
		return nil, ErrUnknownMethod
	}

	// First 4 bytes is method signature
	input := ctx.Input[4:]

	switch method.Name {
	case "transferOwnership":
		var args registry_sol.TransferOwnershipArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.transferOwnership(ctx, args)

	case "setProvider":
		var args registry_sol.SetProviderArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.setProvider(ctx, args)

	case "setPaused":
		var args registry_sol.SetPausedArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.setPaused(ctx, args)

	case "setCooldownSeconds":
		var args registry_sol.SetCooldownSecondsArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.setCooldownSeconds(ctx, args)

	case "openNewBatch":
		batch_id, err := self.openNewBatch(ctx)
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack(batch_id)

	case "closeBatch":
		var args registry_sol.CloseBatchArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.closeBatch(ctx, args)

	case "submitAsset":
		var args registry_sol.SubmitAssetArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.submitAsset(ctx, args)

	case "requestBatchAggregateDecryption":
		var args registry_sol.RequestBatchAggregateDecryptionArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		request_id, err := self.requestBatchAggregateDecryption(ctx, args)
		if err != nil {
			return nil, err
		}
		return method.Outputs.Pack([32]byte(request_id))

	case "deliverDecryption":
		var args registry_sol.DeliverDecryptionArgs
		if err = unpack_args(method, &args, input); err != nil {
			return nil, err
		}
		return nil, self.deliverDecryption(ctx, args)
	}

	return nil, ErrUnknownMethod
}

func unpack_args(method *abi.Method, args interface{}, input []byte) error {
	values, err := method.Inputs.Unpack(input)
	if err != nil {
		return err
	}
	return method.Inputs.Copy(args, values)
}

// Reassigns ownership. Transfers to the zero address are rejected: an owner
// burn would leave the registry permanently unpausable and unmanageable.
func (self *Contract) transferOwnership(ctx *CallFrame, args registry_sol.TransferOwnershipArgs) error {
	if err := self.checkOwner(&ctx.Caller); err != nil {
		return err
	}
	if args.NewOwner == (common.Address{}) {
		return ErrZeroAddress
	}
	previous_owner := self.getOwner()
	self.setOwner(&args.NewOwner)
	self.add_log(self.logs.MakeOwnershipTransferredLog(&previous_owner, &args.NewOwner))
	return nil
}

// Grants or revokes the provider role. Idempotent: re-enabling or re-removing
// is a storage no-op that still emits the corresponding event.
func (self *Contract) setProvider(ctx *CallFrame, args registry_sol.SetProviderArgs) error {
	if err := self.checkOwner(&ctx.Caller); err != nil {
		return err
	}
	exists := self.providers.Exists(&args.Account)
	if args.Enabled {
		if !exists {
			self.providers.Add(&args.Account)
		}
		self.add_log(self.logs.MakeProviderAddedLog(&args.Account))
	} else {
		if exists {
			self.providers.Remove(&args.Account)
		}
		self.add_log(self.logs.MakeProviderRemovedLog(&args.Account))
	}
	return nil
}

func (self *Contract) setPaused(ctx *CallFrame, args registry_sol.SetPausedArgs) error {
	if err := self.checkOwner(&ctx.Caller); err != nil {
		return err
	}
	if args.Paused {
		self.storage.Put(stor_k(field_paused), []byte{1})
		self.add_log(self.logs.MakePausedLog())
	} else {
		self.storage.Put(stor_k(field_paused), nil)
		self.add_log(self.logs.MakeUnpausedLog())
	}
	return nil
}

func (self *Contract) setCooldownSeconds(ctx *CallFrame, args registry_sol.SetCooldownSecondsArgs) error {
	if err := self.checkOwner(&ctx.Caller); err != nil {
		return err
	}
	if args.CooldownSeconds == 0 {
		return ErrZeroCooldown
	}
	self.storage.Put(stor_k(field_cooldown), contract_storage.Uint64ToBytes(args.CooldownSeconds))
	self.add_log(self.logs.MakeCooldownChangedLog(args.CooldownSeconds))
	return nil
}

func (self *Contract) openNewBatch(ctx *CallFrame) (uint64, error) {
	if err := self.checkOwner(&ctx.Caller); err != nil {
		return 0, err
	}
	if err := self.checkNotPaused(); err != nil {
		return 0, err
	}
	batch_id := self.batches.OpenNew()
	self.add_log(self.logs.MakeBatchOpenedLog(batch_id))
	return batch_id, nil
}

// Closing is irreversible and only blocks new submissions - closed batches
// stay aggregable and requestable. Never-existed and already-closed are
// indistinguishable in storage and rejected identically.
func (self *Contract) closeBatch(ctx *CallFrame, args registry_sol.CloseBatchArgs) error {
	if err := self.checkOwner(&ctx.Caller); err != nil {
		return err
	}
	info := self.batches.GetBatchInfo(args.BatchId)
	if info == nil || !info.Open {
		return ErrBatchClosedOrInvalid
	}
	info.Open = false
	self.batches.SaveInfo(args.BatchId, info)
	self.add_log(self.logs.MakeBatchClosedLog(args.BatchId))
	return nil
}

// Appends an asset record to the current batch at the next sequential index.
// Ciphertext contents are not validated beyond the initialized-handle
// predicate - plaintext validity is an application concern.
func (self *Contract) submitAsset(ctx *CallFrame, args registry_sol.SubmitAssetArgs) error {
	if !self.providers.Exists(&ctx.Caller) {
		return ErrNotProvider
	}
	if err := self.checkNotPaused(); err != nil {
		return err
	}

	batch_id := self.batches.CurrentBatchId()
	info := self.batches.GetBatchInfo(batch_id)
	if info == nil || !info.Open {
		return ErrBatchClosedOrInvalid
	}

	record := AssetRecord{
		EncArea:         args.EncArea,
		EncHealth:       args.EncHealth,
		EncCarbon:       args.EncCarbon,
		EncBiodiversity: args.EncBiodiversity,
		Submitter:       ctx.Caller,
	}
	for _, ct := range []fhe.Ciphertext{record.EncArea, record.EncHealth, record.EncCarbon, record.EncBiodiversity} {
		if !self.scheme.Valid(ct) {
			return ErrInvalidCiphertext
		}
	}

	// cooldown is consumed last so a failed submission never burns the window
	if err := self.checkCooldown(field_last_submission, &ctx.Caller); err != nil {
		return err
	}
	self.touchCooldown(field_last_submission, &ctx.Caller)

	asset_index := info.AssetCount
	self.assets.SaveAsset(batch_id, asset_index, &record)
	info.AssetCount++
	self.batches.SaveInfo(batch_id, info)
	self.add_log(self.logs.MakeAssetSubmittedLog(&ctx.Caller, batch_id, asset_index))
	return nil
}

func (self *Contract) getOwner() (ret common.Address) {
	self.storage.Get(stor_k(field_owner), func(bytes []byte) {
		ret = common.BytesToAddress(bytes)
	})
	return
}

func (self *Contract) setOwner(owner *common.Address) {
	self.storage.Put(stor_k(field_owner), owner.Bytes())
}

func (self *Contract) checkOwner(caller *common.Address) error {
	if *caller != self.getOwner() {
		return ErrNotOwner
	}
	return nil
}

func (self *Contract) checkNotPaused() error {
	paused := false
	self.storage.Get(stor_k(field_paused), func([]byte) { paused = true })
	if paused {
		return ErrPaused
	}
	return nil
}

func (self *Contract) cooldownSeconds() (ret uint64) {
	self.storage.Get(stor_k(field_cooldown), func(bytes []byte) {
		ret = contract_storage.BytesToUint64(bytes)
	})
	return
}

// checkCooldown allows an action iff now >= last + cooldown. Callers order it
// after every other guard and call touchCooldown only once the action is
// certain to apply, so a failed attempt never consumes the window.
func (self *Contract) checkCooldown(action_field []byte, caller *common.Address) error {
	var last uint64
	self.storage.Get(self.cooldown_key(action_field, caller), func(bytes []byte) {
		last = contract_storage.BytesToUint64(bytes)
	})
	if last != 0 && self.clock.Now() < last+self.cooldownSeconds() {
		return ErrCooldownNotElapsed
	}
	return nil
}

func (self *Contract) touchCooldown(action_field []byte, caller *common.Address) {
	self.storage.Put(self.cooldown_key(action_field, caller), contract_storage.Uint64ToBytes(self.clock.Now()))
}

func (self *Contract) cooldown_key(action_field []byte, caller *common.Address) *common.Hash {
	return stor_k(action_field, caller.Bytes())
}

func (self *Contract) add_log(log types.Log) {
	self.journal = append(self.journal, log)
}

func stor_k(parts ...[]byte) *common.Hash {
	return contract_storage.Stor_k_1(parts...)
}
