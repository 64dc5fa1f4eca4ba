package registry

import (
	"github.com/NatureVault-project/naturevault-core/naturevault/fhe"
	"github.com/NatureVault-project/naturevault-core/naturevault/util"

	lru "github.com/hashicorp/golang-lru/v2"
)

const aggregate_memo_size = 64

// Aggregate holds the homomorphic batch totals of the two aggregated fields.
// Health and biodiversity indices are stored but intentionally never
// aggregated by this protocol.
type Aggregate struct {
	EncTotalArea   fhe.Ciphertext
	EncTotalCarbon fhe.Ciphertext
}

// agg_memo_key is sound as a memo key because batches are append-only: a
// given (batch id, asset count) pair always denotes the same record set.
type agg_memo_key struct {
	batch_id    uint64
	asset_count uint64
}

// Aggregator folds the encrypted area and carbon fields over all assets of a
// batch. The fold is over ascending indices with the first record seeding the
// accumulator - the ciphertext representation has no safe encrypted zero to
// start from, and a fixed order keeps independent recomputations bitwise
// identical for the commitment cross-check.
type Aggregator struct {
	assets  *Assets
	batches *Batches
	scheme  fhe.Scheme
	memo    *lru.Cache[agg_memo_key, *Aggregate]
}

func (self *Aggregator) Init(assets *Assets, batches *Batches, scheme fhe.Scheme) *Aggregator {
	self.assets = assets
	self.batches = batches
	self.scheme = scheme
	memo, err := lru.New[agg_memo_key, *Aggregate](aggregate_memo_size)
	util.PanicIfNotNil(err)
	self.memo = memo
	return self
}

func (self *Aggregator) Aggregate(batch_id uint64) (*Aggregate, error) {
	info := self.batches.GetBatchInfo(batch_id)
	if info == nil || info.AssetCount == 0 {
		return nil, ErrInvalidBatchId
	}

	memo_key := agg_memo_key{batch_id, info.AssetCount}
	if agg, cached := self.memo.Get(memo_key); cached {
		return agg, nil
	}

	first := self.assets.GetAsset(batch_id, 0)
	if first == nil {
		// This should never happen
		panic("aggregate: missing asset record at index 0")
	}
	total_area, total_carbon := first.EncArea, first.EncCarbon
	for index := uint64(1); index < info.AssetCount; index++ {
		record := self.assets.GetAsset(batch_id, index)
		if record == nil {
			// This should never happen
			panic("aggregate: gap in asset records")
		}
		var err error
		total_area, err = self.scheme.Add(total_area, record.EncArea)
		util.PanicIfNotNil(err)
		total_carbon, err = self.scheme.Add(total_carbon, record.EncCarbon)
		util.PanicIfNotNil(err)
	}

	agg := &Aggregate{EncTotalArea: total_area, EncTotalCarbon: total_carbon}
	self.memo.Add(memo_key, agg)
	return agg, nil
}
