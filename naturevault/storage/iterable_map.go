package contract_storage

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// IterableMap storage fields keys - relative to the prefix from Init function
var (
	field_items       = []byte{0}
	field_items_count = []byte{1}
	field_items_pos   = []byte{2}
)

// IterableMapReader walks a set of byte-string items that supports both
// membership checks and position-ordered listing.
type IterableMapReader struct {
	storage                  *StorageReaderWrapper
	items_storage_prefix     []byte // items are stored under "items_storage_prefix + pos" key
	items_count_storage_key  *common.Hash
	items_pos_storage_prefix []byte // item positions are stored under "items_pos_storage_prefix + item" key
}

// Init scopes the map under a prefix so multiple iterable maps can coexist.
func (self *IterableMapReader) Init(stor *StorageReaderWrapper, prefix []byte) {
	self.storage = stor
	self.items_storage_prefix = append(prefix, field_items...)
	self.items_count_storage_key = Stor_k_1(prefix, field_items_count)
	self.items_pos_storage_prefix = append(prefix, field_items_pos...)
}

func (self *IterableMapReader) ItemExists(item []byte) bool {
	item_exists, _ := self.itemExists(item)
	return item_exists
}

func (self *IterableMapReader) GetItems(start_idx uint32, count uint32) (result [][]byte, end bool) {
	items_count := self.GetCount()
	if items_count == 0 || start_idx >= items_count {
		end = true
		return
	}

	end_idx := start_idx + count
	if items_count <= end_idx {
		result = make([][]byte, items_count-start_idx)
		end = true
	} else {
		result = make([][]byte, count)
	}

	// positions are shifted +1: pos 0 is reserved to mark a non-existent item
	for idx := start_idx + 1; idx <= end_idx && idx <= items_count; idx++ {
		items_k := Stor_k_1(self.items_storage_prefix, uint32ToBytes(idx))

		var item []byte
		self.storage.Get(items_k, func(bytes []byte) {
			item = bytes
		})
		if len(item) == 0 {
			// This should never happen
			panic("iterable map: missing item at occupied position")
		}
		result[idx-start_idx-1] = item
	}
	return
}

func (self *IterableMapReader) GetCount() (count uint32) {
	self.storage.Get(self.items_count_storage_key, func(bytes []byte) {
		count = bytesToUint32(bytes)
	})
	return
}

func (self *IterableMapReader) itemExists(item []byte) (item_exists bool, item_pos uint32) {
	pos_k := Stor_k_1(self.items_pos_storage_prefix, item)
	self.storage.Get(pos_k, func(bytes []byte) {
		item_pos = bytesToUint32(bytes)
	})
	return item_pos != 0, item_pos
}

// IterableMap adds mutation on top of IterableMapReader.
type IterableMap struct {
	IterableMapReader
	storage *StorageWrapper
}

func (self *IterableMap) Init(stor *StorageWrapper, prefix []byte) {
	self.storage = stor
	self.IterableMapReader.Init(&stor.StorageReaderWrapper, prefix)
}

// CreateItem appends an item, returning the new items count.
func (self *IterableMap) CreateItem(item []byte) uint32 {
	if item_exists, _ := self.itemExists(item); item_exists {
		panic("iterable map: item already exists")
	}

	new_item_pos := self.GetCount() + 1
	self.storage.Put(Stor_k_1(self.items_storage_prefix, uint32ToBytes(new_item_pos)), item)
	self.storage.Put(Stor_k_1(self.items_pos_storage_prefix, item), uint32ToBytes(new_item_pos))
	self.storage.Put(self.items_count_storage_key, uint32ToBytes(new_item_pos))
	return new_item_pos
}

// RemoveItem deletes an item by swapping the last item into its position,
// returning the remaining items count.
func (self *IterableMap) RemoveItem(item []byte) uint32 {
	items_count := self.GetCount()
	if items_count == 0 {
		panic("iterable map: remove from empty map")
	}
	item_exists, delete_item_pos := self.itemExists(item)
	if !item_exists {
		panic("iterable map: item does not exist")
	}

	delete_item_at_pos_k := Stor_k_1(self.items_storage_prefix, uint32ToBytes(delete_item_pos))
	delete_item_pos_k := Stor_k_1(self.items_pos_storage_prefix, item)

	if delete_item_pos != items_count {
		last_item_at_pos_k := Stor_k_1(self.items_storage_prefix, uint32ToBytes(items_count))
		var last_item []byte
		self.storage.Get(last_item_at_pos_k, func(bytes []byte) {
			last_item = bytes
		})
		if len(last_item) == 0 {
			// This should never happen
			panic("iterable map: missing last item")
		}
		self.storage.Put(Stor_k_1(self.items_pos_storage_prefix, last_item), uint32ToBytes(delete_item_pos))
		self.storage.Put(delete_item_at_pos_k, last_item)
		delete_item_at_pos_k = last_item_at_pos_k
	}

	self.storage.Put(delete_item_at_pos_k, nil)
	self.storage.Put(delete_item_pos_k, nil)
	self.storage.Put(self.items_count_storage_key, uint32ToBytes(items_count-1))
	return items_count - 1
}

func uint32ToBytes(val uint32) []byte {
	r := make([]byte, 4)
	binary.LittleEndian.PutUint32(r, val)
	return r
}

func bytesToUint32(val []byte) uint32 {
	return binary.LittleEndian.Uint32(val)
}

// Uint64ToBytes encodes record coordinates (batch ids, asset indices) into
// storage key material.
func Uint64ToBytes(val uint64) []byte {
	r := make([]byte, 8)
	binary.BigEndian.PutUint64(r, val)
	return r
}

func BytesToUint64(val []byte) uint64 {
	return binary.BigEndian.Uint64(val)
}
