package registry

import (
	"math/big"

	"github.com/NatureVault-project/naturevault-core/naturevault/fhe"
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"
	"github.com/NatureVault-project/naturevault-core/naturevault/util/keccak256"

	registry_sol "github.com/NatureVault-project/naturevault-core/naturevault/registry/solidity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// DecryptionRequests storage fields keys - relative to the prefix from Init function
var (
	field_requests_ctx    = []byte{0}
	field_requests_totals = []byte{1}
)

// RequestContext binds an oracle request id to the batch and the exact
// ciphertexts the request targeted. Processed flips to true exactly once.
type RequestContext struct {
	BatchId    uint64
	Commitment common.Hash
	Processed  bool
}

// FinalizedTotals are the published cleartext aggregates of a completed
// request. Append-only: never retracted or edited.
type FinalizedTotals struct {
	BatchId     uint64
	TotalArea   *big.Int
	TotalCarbon *big.Int
}

type DecryptionRequestsReader struct {
	storage      *contract_storage.StorageReaderWrapper
	ctx_field    []byte
	totals_field []byte
}

func (self *DecryptionRequestsReader) Init(stor *contract_storage.StorageReaderWrapper, prefix []byte) {
	self.storage = stor
	self.ctx_field = append(prefix, field_requests_ctx...)
	self.totals_field = append(prefix, field_requests_totals...)
}

// GetRequest returns nil for an unknown request id.
func (self *DecryptionRequestsReader) GetRequest(request_id *common.Hash) (ctx *RequestContext) {
	key := contract_storage.Stor_k_1(self.ctx_field, request_id.Bytes())
	self.storage.Get(key, func(bytes []byte) {
		ctx = new(RequestContext)
		if err := rlp.DecodeBytes(bytes, ctx); err != nil {
			// This should never happen
			panic("unable to decode request context rlp")
		}
	})
	return
}

// GetFinalizedTotals returns nil until the request finalizes.
func (self *DecryptionRequestsReader) GetFinalizedTotals(request_id *common.Hash) (totals *FinalizedTotals) {
	key := contract_storage.Stor_k_1(self.totals_field, request_id.Bytes())
	self.storage.Get(key, func(bytes []byte) {
		totals = new(FinalizedTotals)
		if err := rlp.DecodeBytes(bytes, totals); err != nil {
			// This should never happen
			panic("unable to decode finalized totals rlp")
		}
	})
	return
}

type DecryptionRequests struct {
	DecryptionRequestsReader
	storage *contract_storage.StorageWrapper
}

func (self *DecryptionRequests) Init(stor *contract_storage.StorageWrapper, prefix []byte) {
	self.storage = stor
	self.DecryptionRequestsReader.Init(&stor.StorageReaderWrapper, prefix)
}

func (self *DecryptionRequests) SaveRequest(request_id *common.Hash, ctx *RequestContext) {
	key := contract_storage.Stor_k_1(self.ctx_field, request_id.Bytes())
	bytes, err := rlp.EncodeToBytes(ctx)
	if err != nil {
		panic(err)
	}
	self.storage.Put(key, bytes)
}

func (self *DecryptionRequests) SaveTotals(request_id *common.Hash, totals *FinalizedTotals) {
	key := contract_storage.Stor_k_1(self.totals_field, request_id.Bytes())
	bytes, err := rlp.EncodeToBytes(totals)
	if err != nil {
		panic(err)
	}
	self.storage.Put(key, bytes)
}

// requestBatchAggregateDecryption is open to any caller. It folds the current
// encrypted totals for the batch, commits to them, and hands them to the
// oracle. Requests against a still-open batch are allowed - but any
// submission landing before the callback will fail that callback's
// state-consistency check, so callers wanting reliable finalization should
// target closed batches.
func (self *Contract) requestBatchAggregateDecryption(ctx *CallFrame, args registry_sol.RequestBatchAggregateDecryptionArgs) (common.Hash, error) {
	if err := self.checkNotPaused(); err != nil {
		return common.Hash{}, err
	}
	agg, err := self.aggregator.Aggregate(args.BatchId)
	if err != nil {
		return common.Hash{}, err
	}
	// cooldown is checked before the oracle call but consumed only after it
	// succeeds: neither a guard failure nor an oracle error burns the window
	if err := self.checkCooldown(field_last_request, &ctx.Caller); err != nil {
		return common.Hash{}, err
	}

	commitment := self.aggregateCommitment(args.BatchId, agg)
	request_id, err := self.oracle.RequestDecryption([]fhe.Ciphertext{agg.EncTotalArea, agg.EncTotalCarbon})
	if err != nil {
		return common.Hash{}, err
	}
	self.touchCooldown(field_last_request, &ctx.Caller)

	self.requests.SaveRequest(&request_id, &RequestContext{BatchId: args.BatchId, Commitment: commitment})
	self.add_log(self.logs.MakeDecryptionRequestedLog(&request_id, args.BatchId))
	return request_id, nil
}

// deliverDecryption accepts the oracle callback. Caller identity is
// irrelevant - authenticity is established by the proof alone. The guards
// run strictly in order: replay, state consistency, proof. A rejected
// callback leaves the request unprocessed.
func (self *Contract) deliverDecryption(ctx *CallFrame, args registry_sol.DeliverDecryptionArgs) error {
	if err := self.checkNotPaused(); err != nil {
		return err
	}

	request_id := common.Hash(args.RequestId)
	request := self.requests.GetRequest(&request_id)
	if request == nil {
		return ErrUnknownRequestId
	}
	if request.Processed {
		return ErrReplayAttempt
	}

	// recompute the aggregate as of now: submissions that landed after the
	// request was issued make the delivered cleartext stale and must reject
	agg, err := self.aggregator.Aggregate(request.BatchId)
	if err != nil {
		return err
	}
	if self.aggregateCommitment(request.BatchId, agg) != request.Commitment {
		return ErrStateMismatch
	}

	if !self.oracle.VerifyProof(request_id, args.Cleartexts, args.Proof) {
		return ErrProofVerification
	}

	values, err := fhe.DecodeCleartexts(args.Cleartexts)
	if err != nil || len(values) != 2 {
		return ErrMalformedCleartexts
	}

	request.Processed = true
	self.requests.SaveRequest(&request_id, request)
	self.requests.SaveTotals(&request_id, &FinalizedTotals{
		BatchId:     request.BatchId,
		TotalArea:   values[0],
		TotalCarbon: values[1],
	})
	self.add_log(self.logs.MakeDecryptionCompletedLog(&request_id, request.BatchId, values[0], values[1]))
	return nil
}

// aggregateCommitment binds the ordered encrypted totals to this deployment
// (chain id + contract address) and the batch they came from.
func (self *Contract) aggregateCommitment(batch_id uint64, agg *Aggregate) common.Hash {
	return keccak256.HashAndReturnByValue(
		contract_storage.Uint64ToBytes(self.cfg.ChainID),
		registry_contract_address.Bytes(),
		contract_storage.Uint64ToBytes(batch_id),
		agg.EncTotalArea,
		agg.EncTotalCarbon,
	)
}
