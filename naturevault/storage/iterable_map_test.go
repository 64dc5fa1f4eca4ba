package contract_storage

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

// map_backend is a minimal in-package Storage over a plain map.
type map_backend struct {
	cells map[string][]byte
}

func new_map_backend() *map_backend {
	return &map_backend{cells: make(map[string][]byte)}
}

func (self *map_backend) cell_key(addr *common.Address, key *common.Hash) string {
	return string(addr.Bytes()) + string(key.Bytes())
}

func (self *map_backend) Get(addr *common.Address, key *common.Hash, cb func([]byte)) {
	if value, present := self.cells[self.cell_key(addr, key)]; present && len(value) != 0 {
		cb(value)
	}
}

func (self *map_backend) Put(addr *common.Address, key *common.Hash, value []byte) {
	k := self.cell_key(addr, key)
	if len(value) == 0 {
		delete(self.cells, k)
		return
	}
	self.cells[k] = value
}

var test_addr = common.HexToAddress("0x00000000000000000000000000000000000000EC")

func new_test_wrapper(backend Storage) (ret StorageWrapper) {
	ret.Init(&test_addr, backend)
	return
}

func TestStorageWrapperCaching(t *testing.T) {
	backend := new_map_backend()
	stor := new_test_wrapper(backend)

	key := Stor_k_1([]byte{0})
	stor.Put(key, []byte("value"))

	var got []byte
	stor.Get(key, func(bytes []byte) { got = bytes })
	assert.Equal(t, []byte("value"), got)

	// cached read survives a backend mutation until the cache is cleared
	backend.cells = make(map[string][]byte)
	got = nil
	stor.Get(key, func(bytes []byte) { got = bytes })
	assert.Equal(t, []byte("value"), got)

	stor.ClearCache()
	got = nil
	stor.Get(key, func(bytes []byte) { got = bytes })
	assert.Nil(t, got)
}

func TestStorageWrapperDelete(t *testing.T) {
	stor := new_test_wrapper(new_map_backend())

	key := Stor_k_1([]byte{1})
	stor.Put(key, []byte("value"))
	stor.Put(key, nil)

	called := false
	stor.Get(key, func([]byte) { called = true })
	assert.False(t, called)
}

func TestStorKeyDomainSeparation(t *testing.T) {
	// prefixed coordinates must never collide across fields
	assert.NotEqual(t, Stor_k_2([]byte{0}, Uint64ToBytes(1)), Stor_k_2([]byte{1}, Uint64ToBytes(1)))
	assert.NotEqual(t, Stor_k_2([]byte{0}, Uint64ToBytes(1)), Stor_k_2([]byte{0}, Uint64ToBytes(2)))
	assert.Equal(t, Stor_k_2([]byte{0}, Uint64ToBytes(1)), *Stor_k_1([]byte{0}, Uint64ToBytes(1)))
}

func TestIterableMap(t *testing.T) {
	stor := new_test_wrapper(new_map_backend())
	var imap IterableMap
	imap.Init(&stor, []byte{7})

	assert.Equal(t, uint32(0), imap.GetCount())
	assert.False(t, imap.ItemExists([]byte("a")))

	assert.Equal(t, uint32(1), imap.CreateItem([]byte("a")))
	assert.Equal(t, uint32(2), imap.CreateItem([]byte("b")))
	assert.Equal(t, uint32(3), imap.CreateItem([]byte("c")))
	assert.True(t, imap.ItemExists([]byte("b")))

	items, end := imap.GetItems(0, 10)
	assert.True(t, end)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, items)

	// partial listing
	items, end = imap.GetItems(1, 1)
	assert.False(t, end)
	assert.Equal(t, [][]byte{[]byte("b")}, items)
	_, end = imap.GetItems(3, 1)
	assert.True(t, end)

	// removal swaps the last item into the vacated position
	assert.Equal(t, uint32(2), imap.RemoveItem([]byte("a")))
	assert.False(t, imap.ItemExists([]byte("a")))
	items, _ = imap.GetItems(0, 10)
	assert.Equal(t, [][]byte{[]byte("c"), []byte("b")}, items)

	// removing the last position needs no swap
	assert.Equal(t, uint32(1), imap.RemoveItem([]byte("b")))
	items, _ = imap.GetItems(0, 10)
	assert.Equal(t, [][]byte{[]byte("c")}, items)

	// re-adding a removed item works
	assert.Equal(t, uint32(2), imap.CreateItem([]byte("a")))
	assert.True(t, imap.ItemExists([]byte("a")))
}

func TestIterableMapPanics(t *testing.T) {
	stor := new_test_wrapper(new_map_backend())
	var imap IterableMap
	imap.Init(&stor, []byte{7})

	imap.CreateItem([]byte("a"))
	assert.Panics(t, func() { imap.CreateItem([]byte("a")) })
	assert.Panics(t, func() { imap.RemoveItem([]byte("b")) })

	imap.RemoveItem([]byte("a"))
	assert.Panics(t, func() { imap.RemoveItem([]byte("a")) })
}

func TestIterableMapPrefixIsolation(t *testing.T) {
	stor := new_test_wrapper(new_map_backend())
	var imap_1, imap_2 IterableMap
	imap_1.Init(&stor, []byte{1})
	imap_2.Init(&stor, []byte{2})

	imap_1.CreateItem([]byte("a"))
	assert.False(t, imap_2.ItemExists([]byte("a")))
	assert.Equal(t, uint32(0), imap_2.GetCount())
}
