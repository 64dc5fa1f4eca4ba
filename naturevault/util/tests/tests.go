package tests

import (
	"encoding/binary"
	"os"
	"runtime"
	"testing"

	"github.com/NatureVault-project/naturevault-core/naturevault/util/asserts"
	"github.com/NatureVault-project/naturevault-core/naturevault/util/keccak256"

	"github.com/stretchr/testify/assert"

	"github.com/ethereum/go-ethereum/common"
)

type TestCtx struct {
	*testing.T
	Assert   assert.Assertions
	data_dir string
}

func NewTestCtx(t *testing.T) (ret TestCtx) {
	ret.T = t
	ret.Assert = *assert.New(t)
	return
}

func (self *TestCtx) Close() {
	if len(self.data_dir) != 0 {
		os.RemoveAll(self.data_dir)
	}
}

func (self *TestCtx) DataDir() string {
	if len(self.data_dir) != 0 {
		return self.data_dir
	}
	_, test_file_path, _, _ := runtime.Caller(1)
	h := keccak256.HashAndReturnByValue([]byte(test_file_path), []byte(self.Name()))
	self.data_dir = os.TempDir() + "/" + h.Hex()
	os.RemoveAll(self.data_dir)
	asserts.Holds(os.MkdirAll(self.data_dir, 0o755) == nil)
	return self.data_dir
}

func Addr(i uint64) (ret common.Address) {
	asserts.Holds(i > 0)
	binary.BigEndian.PutUint64(ret[12:], i)
	return
}

func AddrP(i uint64) *common.Address {
	ret := Addr(i)
	return &ret
}

func Noop(...interface{}) {}
