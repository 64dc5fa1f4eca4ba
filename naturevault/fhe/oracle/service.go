package oracle

import (
	"bytes"
	"math/big"
	"sync"

	"github.com/NatureVault-project/naturevault-core/naturevault/fhe"
	"github.com/NatureVault-project/naturevault-core/naturevault/util"
	"github.com/NatureVault-project/naturevault-core/naturevault/util/keccak256"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

var (
	ErrNoCiphertexts  = util.ErrorString("no ciphertexts to decrypt")
	ErrUnknownRequest = util.ErrorString("unknown decryption request")
)

// Service is the in-process decryption oracle used by local setups and tests.
// It honours the two oracle guarantees the registry consumes: an eventual
// cleartext+proof delivery per request id, and proof verifiability against
// the ciphertexts originally submitted. Delivery is driven explicitly via
// Fulfill so tests control when (and whether) a callback lands.
type Service struct {
	scheme   fhe.AdditiveScheme
	secret   []byte
	pending  mapset.Set[fhe.RequestID]
	requests map[fhe.RequestID][]fhe.Ciphertext
	mu       sync.Mutex
}

func (self *Service) Init(secret []byte) *Service {
	self.secret = common.CopyBytes(secret)
	self.pending = mapset.NewSet[fhe.RequestID]()
	self.requests = make(map[fhe.RequestID][]fhe.Ciphertext)
	return self
}

func (self *Service) RequestDecryption(cts []fhe.Ciphertext) (fhe.RequestID, error) {
	defer util.LockUnlock(&self.mu)()
	if len(cts) == 0 {
		return fhe.RequestID{}, ErrNoCiphertexts
	}
	uid := uuid.New()
	id := keccak256.HashAndReturnByValue(uid[:])
	copied := make([]fhe.Ciphertext, len(cts))
	for i, ct := range cts {
		copied[i] = common.CopyBytes(ct)
	}
	self.requests[id] = copied
	self.pending.Add(id)
	return id, nil
}

// Fulfill produces the cleartext payload and proof for an outstanding
// request. A request may be fulfilled repeatedly - replay protection is the
// registry's job, not the oracle's.
func (self *Service) Fulfill(id fhe.RequestID) (cleartexts []byte, proof []byte, err error) {
	defer util.LockUnlock(&self.mu)()
	cts, known := self.requests[id]
	if !known {
		err = ErrUnknownRequest
		return
	}
	values := make([]*big.Int, len(cts))
	for i, ct := range cts {
		if values[i], err = self.scheme.Decrypt(ct); err != nil {
			return
		}
	}
	self.pending.Remove(id)
	cleartexts = fhe.EncodeCleartexts(values)
	proof = self.mintProof(id, cleartexts)
	return
}

func (self *Service) VerifyProof(id fhe.RequestID, cleartexts []byte, proof []byte) bool {
	defer util.LockUnlock(&self.mu)()
	if _, known := self.requests[id]; !known {
		return false
	}
	return bytes.Equal(self.mintProof(id, cleartexts), proof)
}

func (self *Service) PendingCount() int {
	defer util.LockUnlock(&self.mu)()
	return self.pending.Cardinality()
}

func (self *Service) mintProof(id fhe.RequestID, cleartexts []byte) []byte {
	return keccak256.Hash(self.secret, id[:], cleartexts).Bytes()
}
