package test_utils

import (
	"math/big"
	"strings"
	"testing"

	"github.com/NatureVault-project/naturevault-core/naturevault/db/memory"
	"github.com/NatureVault-project/naturevault-core/naturevault/fhe"
	"github.com/NatureVault-project/naturevault-core/naturevault/fhe/oracle"
	registry "github.com/NatureVault-project/naturevault-core/naturevault/registry/precompiled"
	registry_sol "github.com/NatureVault-project/naturevault-core/naturevault/registry/solidity"
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"
	"github.com/NatureVault-project/naturevault-core/naturevault/util"
	"github.com/NatureVault-project/naturevault-core/naturevault/util/tests"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ManualClock lets tests drive cooldown windows deterministically.
type ManualClock struct {
	now uint64
}

func (self *ManualClock) Now() uint64 {
	return self.now
}

func (self *ManualClock) Advance(seconds uint64) {
	self.now += seconds
}

// oracle_gate fronts the in-process oracle so tests can inject request
// failures without touching the oracle itself.
type oracle_gate struct {
	inner    fhe.Oracle
	next_err error
}

func (self *oracle_gate) RequestDecryption(cts []fhe.Ciphertext) (fhe.RequestID, error) {
	if err := self.next_err; err != nil {
		self.next_err = nil
		return fhe.RequestID{}, err
	}
	return self.inner.RequestDecryption(cts)
}

func (self *oracle_gate) VerifyProof(id fhe.RequestID, cleartexts []byte, proof []byte) bool {
	return self.inner.VerifyProof(id, cleartexts, proof)
}

type ContractTest struct {
	Cfg    registry.Config
	SUT    *registry.Contract
	Oracle *oracle.Service
	Clock  *ManualClock
	Scheme fhe.AdditiveScheme

	gate    *oracle_gate
	statedb contract_storage.Database
	tc      *tests.TestCtx
	abi     abi.ABI
}

func Init_test(t *testing.T, cfg registry.Config) (tc tests.TestCtx, test ContractTest) {
	tc = tests.NewTestCtx(t)
	test.init(&tc, cfg)
	return
}

func (self *ContractTest) init(t *tests.TestCtx, cfg registry.Config) {
	self.tc = t
	self.Cfg = cfg

	statedb, err := new(memory.Factory).NewInstance()
	util.PanicIfNotNil(err)
	self.statedb = statedb

	self.Oracle = new(oracle.Service).Init([]byte("naturevault-test-oracle"))
	self.gate = &oracle_gate{inner: self.Oracle}
	self.Clock = &ManualClock{now: 1}
	self.SUT = new(registry.API).Init(cfg).NewContract(self.statedb, self.gate, self.Scheme, self.Clock)
	self.abi, err = abi.JSON(strings.NewReader(registry_sol.NatureVaultRegistryClientMetaData))
	util.PanicIfNotNil(err)
}

func (self *ContractTest) Execute(from common.Address, input []byte) registry.ExecutionResult {
	return self.SUT.Run(registry.CallFrame{Caller: from, Input: input})
}

func (self *ContractTest) ExecuteAndCheck(from common.Address, input []byte, exe_err util.ErrorString) registry.ExecutionResult {
	res := self.Execute(from, input)
	self.tc.Assert.Equal(exe_err, res.ExecutionErr)
	return res
}

func (self *ContractTest) Pack(name string, args ...interface{}) []byte {
	packed, err := self.abi.Pack(name, args...)
	if err != nil {
		self.tc.Error(err)
		self.tc.FailNow()
	}
	return packed
}

func (self *ContractTest) EventId(name string) common.Hash {
	event, known := self.abi.Events[name]
	if !known {
		self.tc.Error("unknown event: " + name)
		self.tc.FailNow()
	}
	return event.ID
}

func (self *ContractTest) GetReader() *registry.Reader {
	return new(registry.Reader).Init(self.statedb)
}

// FailNextOracleRequest makes the next decryption request fail oracle-side.
func (self *ContractTest) FailNextOracleRequest(err error) {
	self.gate.next_err = err
}

// Encrypt wraps a plaintext value into a dev-scheme ciphertext handle.
func (self *ContractTest) Encrypt(value int64) []byte {
	return self.Scheme.Encrypt(big.NewInt(value))
}

func (self *ContractTest) AdvanceTime(seconds uint64) {
	self.Clock.Advance(seconds)
}

func (self *ContractTest) End() {
	self.statedb.Close()
	self.tc.Close()
}
