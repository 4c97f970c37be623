// Copyright (c) 2026 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists events emitted by the built-in contracts into a
// sqlite db and serves filtered queries over them.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/rewardnet/stakevault/rnt"
	"github.com/rewardnet/stakevault/xenv"
)

// EventDB manages all persisted events.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
	stmtCache     *stmtCache
}

// New create or open event db at given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
		stmtCache:     newStmtCache(db),
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*EventDB, error) {
	db, err := New(":memory:")
	if err != nil {
		return nil, err
	}
	// each pool connection would get its own private memory db, so the
	// pool must never grow past the one holding the data
	db.db.SetMaxOpenConns(1)
	return db, nil
}

// Append stores the given events in emission order, all in one tx.
func (db *EventDB) Append(events []*xenv.Event) error {
	if len(events) == 0 {
		return nil
	}
	insert, err := db.stmtCache.Prepare(
		"INSERT INTO event(name, address, user, amount, data, time) VALUES ( ?, ?, ?, ?, ?, ? );")
	if err != nil {
		return err
	}
	return db.execInTx(func(tx *sql.Tx) error {
		stmt := tx.Stmt(insert)
		defer stmt.Close()
		for _, ev := range events {
			r := newRecord(ev)
			if _, err := stmt.Exec(
				r.Name,
				r.Address.Bytes(),
				r.User.Bytes(),
				r.Amount.Bytes(),
				r.Data,
				r.Time,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *EventDB) execInTx(proc func(*sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Filter return records matching the given filter, or all records when the
// filter is nil.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Record, error) {
	if filter == nil {
		return db.query(ctx, "SELECT * FROM event")
	}

	metricsHandleFilter(filter)

	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND time >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND time <= ? "
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND ( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Name != nil {
			args = append(args, *criteria.Name)
			stmt += " AND name = ? "
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		if criteria.User != nil {
			args = append(args, criteria.User.Bytes())
			stmt += " AND user = ? "
		}
		stmt += ")"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

// NewestSeq returns the seq of the newest stored record, or 0 when the db
// is empty.
func (db *EventDB) NewestSeq() (uint64, error) {
	row := db.db.QueryRow("SELECT seq FROM event ORDER BY seq DESC LIMIT 1")
	var seq uint64
	if err := row.Scan(&seq); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return seq, nil
}

// query query records
func (db *EventDB) query(ctx context.Context, stmt string, args ...interface{}) ([]*Record, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     uint64
			name    string
			address []byte
			user    []byte
			amount  []byte
			data    []byte
			time    uint64
		)
		if err := rows.Scan(
			&seq,
			&name,
			&address,
			&user,
			&amount,
			&data,
			&time,
		); err != nil {
			return nil, err
		}
		records = append(records, &Record{
			Seq:     seq,
			Name:    name,
			Address: rnt.BytesToAddress(address),
			User:    rnt.BytesToAddress(user),
			Amount:  new(big.Int).SetBytes(amount),
			Data:    data,
			Time:    time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Path return db's directory.
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite.
func (db *EventDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}
