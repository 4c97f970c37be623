// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var (
	writeOpt = &opt.WriteOptions{}
	readOpt  = &opt.ReadOptions{}
)

// Options options for opening a leveldb backed store.
type Options struct {
	CacheSize              int // in MB
	OpenFilesCacheCapacity int
}

type levelDB struct {
	db *leveldb.DB
}

func openLevelDB(stg storage.Storage, opts Options) (*levelDB, error) {
	cacheSize := max(opts.CacheSize, 16)
	filesCacheCap := max(opts.OpenFilesCacheCapacity, 64)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: filesCacheCap,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &levelDB{db: db}, nil
}

// Open opens or creates a leveldb backed store at the given path.
func Open(path string, opts Options) (Store, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open level db storage")
	}
	return openLevelDB(stg, opts)
}

// NewMem creates a store backed by an in-memory leveldb.
func NewMem() Store {
	db, err := openLevelDB(storage.NewMemStorage(), Options{})
	if err != nil {
		panic(errors.Wrap(err, "create mem level db"))
	}
	return db
}

func (l *levelDB) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, readOpt)
}

func (l *levelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, readOpt)
}

func (l *levelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (l *levelDB) Put(key, val []byte) error {
	return l.db.Put(key, val, writeOpt)
}

func (l *levelDB) Delete(key []byte) error {
	return l.db.Delete(key, writeOpt)
}

func (l *levelDB) NewBatch() Batch {
	return &levelDBBatch{
		l.db,
		&leveldb.Batch{},
	}
}

func (l *levelDB) Close() error {
	return l.db.Close()
}

type levelDBBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelDBBatch) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return nil
}

func (b *levelDBBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelDBBatch) Len() int {
	return b.batch.Len()
}

func (b *levelDBBatch) Write() error {
	return b.db.Write(b.batch, writeOpt)
}
