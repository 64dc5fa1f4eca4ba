package db

import (
	"testing"

	"github.com/NatureVault-project/naturevault-core/naturevault/db/leveldb"
	"github.com/NatureVault-project/naturevault-core/naturevault/db/memory"
	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"
	"github.com/NatureVault-project/naturevault-core/naturevault/util/tests"

	"github.com/ethereum/go-ethereum/common"
)

func roundTrip(tc *tests.TestCtx, database contract_storage.Database) {
	addr := tests.Addr(1)
	key := contract_storage.Stor_k_1([]byte{0})

	var got []byte
	database.Get(&addr, key, func(bytes []byte) { got = common.CopyBytes(bytes) })
	tc.Assert.Nil(got)

	database.Put(&addr, key, []byte("value"))
	database.Get(&addr, key, func(bytes []byte) { got = common.CopyBytes(bytes) })
	tc.Assert.Equal([]byte("value"), got)

	// cells are scoped per account
	other := tests.Addr(2)
	got = nil
	database.Get(&other, key, func(bytes []byte) { got = bytes })
	tc.Assert.Nil(got)

	// empty value deletes the cell
	database.Put(&addr, key, nil)
	got = nil
	database.Get(&addr, key, func(bytes []byte) { got = bytes })
	tc.Assert.Nil(got)
}

func TestMemoryBackend(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()

	database, err := new(memory.Factory).NewInstance()
	tc.Assert.Nil(err)
	defer database.Close()
	roundTrip(&tc, database)
}

func TestLevelDBBackend(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()

	factory := leveldb.Factory{File: tc.DataDir() + "/ldb"}
	database, err := factory.NewInstance()
	tc.Assert.Nil(err)
	defer database.Close()
	roundTrip(&tc, database)
}

func TestLevelDBPersistence(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()

	factory := leveldb.Factory{File: tc.DataDir() + "/ldb"}
	addr := tests.Addr(1)
	key := contract_storage.Stor_k_1([]byte{1})

	database, err := factory.NewInstance()
	tc.Assert.Nil(err)
	database.Put(&addr, key, []byte("persisted"))
	tc.Assert.Nil(database.Close())

	// a reopened database sees the previously written cells
	database, err = factory.NewInstance()
	tc.Assert.Nil(err)
	defer database.Close()
	var got []byte
	database.Get(&addr, key, func(bytes []byte) { got = common.CopyBytes(bytes) })
	tc.Assert.Equal([]byte("persisted"), got)
}

func TestFactoryFromConfig(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()

	factory, err := FactoryFromConfig([]byte(`{"type": "memory"}`))
	tc.Assert.Nil(err)
	tc.Assert.IsType(new(memory.Factory), factory)

	factory, err = FactoryFromConfig([]byte(`{"type": "leveldb", "options": {"file": "/tmp/x", "cache": 32}}`))
	tc.Assert.Nil(err)
	ldb_factory, ok := factory.(*leveldb.Factory)
	tc.Assert.True(ok)
	tc.Assert.Equal("/tmp/x", ldb_factory.File)
	tc.Assert.Equal(32, ldb_factory.Cache)

	_, err = FactoryFromConfig([]byte(`{"type": "bogus"}`))
	tc.Assert.NotNil(err)
}
