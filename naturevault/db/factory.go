package db

import (
	"encoding/json"
	"errors"

	contract_storage "github.com/NatureVault-project/naturevault-core/naturevault/storage"

	"github.com/NatureVault-project/naturevault-core/naturevault/db/leveldb"
	"github.com/NatureVault-project/naturevault-core/naturevault/db/memory"
	"github.com/NatureVault-project/naturevault-core/naturevault/util"
)

type Factory interface {
	NewInstance() (contract_storage.Database, error)
}

var FactoryRegistry = map[string]func() Factory{
	"leveldb": func() Factory {
		return new(leveldb.Factory)
	},
	"memory": func() Factory {
		return new(memory.Factory)
	},
}

type FactoryType struct {
	Type string `json:"type"`
}

type FactoryOptions struct {
	Factory Factory `json:"options"`
}

func FactoryFromConfig(config []byte) (Factory, error) {
	factory_type := new(FactoryType)
	util.PanicIfNotNil(json.Unmarshal(config, factory_type))
	new_factory, known := FactoryRegistry[factory_type.Type]
	if !known {
		return nil, errors.New("unknown db type: " + factory_type.Type)
	}
	opts := FactoryOptions{new_factory()}
	util.PanicIfNotNil(json.Unmarshal(config, &opts))
	return opts.Factory, nil
}
