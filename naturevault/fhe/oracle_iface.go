package fhe

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// RequestID identifies one decryption request. Ids are issued by the oracle
// and never reused.
type RequestID = common.Hash

// Oracle is the asynchronous decryption service boundary. RequestDecryption
// is fire-and-forget: the cleartext/proof pair arrives later as an inbound
// call on the registry, which authenticates it solely through VerifyProof.
type Oracle interface {
	RequestDecryption(cts []Ciphertext) (RequestID, error)
	VerifyProof(id RequestID, cleartexts []byte, proof []byte) bool
}

// Cleartexts travel as one RLP-encoded payload so the proof can bind the
// exact bytes that were delivered.
func EncodeCleartexts(values []*big.Int) []byte {
	out, err := rlp.EncodeToBytes(values)
	if err != nil {
		panic(err)
	}
	return out
}

func DecodeCleartexts(payload []byte) (values []*big.Int, err error) {
	err = rlp.DecodeBytes(payload, &values)
	return
}
