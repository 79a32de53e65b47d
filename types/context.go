package types

import (
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"
)

// Context carries the database, the current block height and the logger
// through every keeper call. It is passed by value; the With* helpers
// return modified copies.
type Context struct {
	db      dbm.DB
	chainID string
	height  int64
	logger  log.Logger
}

// NewContext creates a new context
func NewContext(db dbm.DB, chainID string, height int64, logger log.Logger) Context {
	return Context{
		db:      db,
		chainID: chainID,
		height:  height,
		logger:  logger,
	}
}

// KVStore fetches a KVStore from the database, namespaced by the key.
func (c Context) KVStore(key StoreKey) KVStore {
	return dbm.NewPrefixDB(c.db, storeKeyPrefix(key))
}

func (c Context) DB() dbm.DB         { return c.db }
func (c Context) ChainID() string    { return c.chainID }
func (c Context) BlockHeight() int64 { return c.height }
func (c Context) Logger() log.Logger { return c.logger }
func (c Context) IsZero() bool       { return c.db == nil }

func (c Context) WithBlockHeight(height int64) Context {
	if height < 0 {
		panic("block height must not be negative")
	}
	c.height = height
	return c
}

func (c Context) WithChainID(chainID string) Context {
	c.chainID = chainID
	return c
}

func (c Context) WithLogger(logger log.Logger) Context {
	c.logger = logger
	return c
}
