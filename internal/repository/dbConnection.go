// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/qustavo/sqlhooks/v2"

	"github.com/sakrist/ancrate/pkg/log"
)

var (
	dbConnOnce     sync.Once
	dbConnInstance *DBConnection
	dbConnErr      error

	sqliteDriverOnce sync.Once
)

// DBConnection wraps the single sqlx handle this reader ever opens.
type DBConnection struct {
	DB *sqlx.DB
}

// Connect opens path read-only and registers the hook-wrapped sqlite3
// driver the first time it is called; later calls are no-ops and return the
// same connection. The file must already exist — this reader never creates
// or migrates a store.
func Connect(path string) (*DBConnection, error) {
	dbConnOnce.Do(func() {
		if _, statErr := os.Stat(path); statErr != nil {
			if errors.Is(statErr, os.ErrNotExist) {
				dbConnErr = SourceUnavailable
				return
			}
			dbConnErr = fmt.Errorf("%w: %v", SourceUnreadable, statErr)
			return
		}

		sqliteDriverOnce.Do(func() {
			sql.Register("sqlite3WithHooks", sqlhooks.Wrap(&sqlite3.SQLiteDriver{}, &Hooks{}))
		})

		dsn := fmt.Sprintf("file:%s?mode=ro&_query_only=true", path)
		dbHandle, err := sqlx.Open("sqlite3WithHooks", dsn)
		if err != nil {
			dbConnErr = fmt.Errorf("%w: %v", SourceUnreadable, err)
			return
		}

		cfg := GetConfig()
		dbHandle.SetMaxOpenConns(cfg.MaxOpenConnections)
		dbHandle.SetMaxIdleConns(cfg.MaxIdleConnections)
		dbHandle.SetConnMaxLifetime(cfg.ConnectionMaxLifetime)
		dbHandle.SetConnMaxIdleTime(cfg.ConnectionMaxIdleTime)

		if err := dbHandle.Ping(); err != nil {
			log.Critf("notes store at %s exists but is not a readable sqlite file: %v", path, err)
			dbConnErr = fmt.Errorf("%w: %v", SourceUnreadable, err)
			return
		}

		dbConnInstance = &DBConnection{DB: dbHandle}
	})

	return dbConnInstance, dbConnErr
}

// GetConnection returns the singleton connection established by Connect.
// It panics if Connect has not succeeded yet, matching the ambient stack's
// "must be initialized before use" repository pattern.
func GetConnection() *DBConnection {
	if dbConnInstance == nil {
		panic("repository: database connection not initialized")
	}
	return dbConnInstance
}
