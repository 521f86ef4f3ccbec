// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package database owns the postgres connection pool. The service role
// (ffapi) can only create per-user roles and switch into them; all data
// access runs inside a transaction pinned to the requesting user's role
// so row-level security applies.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// PgxIface is the slice of the pgx API the service uses; satisfied by
// *pgxpool.Pool in production and by pgxmock connections in tests.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Ping(ctx context.Context) error
}

var pool PgxIface

// Connect establishes the shared connection pool from database.url.
func Connect() error {
	p, err := pgxpool.Connect(context.Background(), viper.GetString("database.url"))
	if err != nil {
		return err
	}
	if err := p.Ping(context.Background()); err != nil {
		return err
	}
	pool = p
	return nil
}

// SetPool replaces the shared pool; tests install pgxmock connections
// through this.
func SetPool(p PgxIface) {
	pool = p
}

// Pool returns the shared pool.
func Pool() PgxIface {
	return pool
}

func createUser(userID string) error {
	if userID == "" {
		log.Error().Msg("userID cannot be an empty string")
		return errors.New("userID cannot be an empty string")
	}

	subLog := log.With().Str("UserID", userID).Logger()
	subLog.Info().Msg("creating new role")

	trx, err := pool.Begin(context.Background())
	if err != nil {
		subLog.Error().Err(err).Msg("could not create new transaction")
		return err
	}

	// Make sure the current role is ffapi
	if _, err := trx.Exec(context.Background(), "SET ROLE ffapi"); err != nil {
		subLog.Error().Err(err).Msg("could not switch to ffapi role")
		if err := trx.Rollback(context.Background()); err != nil {
			subLog.Error().Err(err).Msg("rollback failed")
		}
		return err
	}

	// NOTE: postgresql only sanitizes select, insert, update, and delete
	// queries; identifiers in DDL must be sanitized by hand
	ident := pgx.Identifier{userID}
	sql := fmt.Sprintf("CREATE ROLE %s WITH nologin IN ROLE ffuser;", ident.Sanitize())
	if _, err := trx.Exec(context.Background(), sql); err != nil {
		subLog.Error().Err(err).Str("Query", sql).Msg("failed to create role")
		if err := trx.Rollback(context.Background()); err != nil {
			subLog.Error().Err(err).Msg("rollback failed")
		}
		return err
	}

	sql = fmt.Sprintf("GRANT %s TO ffapi;", ident.Sanitize())
	if _, err := trx.Exec(context.Background(), sql); err != nil {
		subLog.Error().Err(err).Str("Query", sql).Msg("failed to grant privileges to role")
		if err := trx.Rollback(context.Background()); err != nil {
			subLog.Error().Err(err).Msg("rollback failed")
		}
		return err
	}

	if err := trx.Commit(context.Background()); err != nil {
		subLog.Error().Err(err).Msg("failed to commit changes")
		return err
	}

	return nil
}

// TrxForUser starts a transaction with the session role switched to the
// user's role, creating the role on first use.
func TrxForUser(userID string) (pgx.Tx, error) {
	trx, err := pool.Begin(context.Background())
	if err != nil {
		return nil, err
	}

	ident := pgx.Identifier{userID}
	sql := fmt.Sprintf("SET ROLE %s", ident.Sanitize())
	if _, err := trx.Exec(context.Background(), sql); err != nil {
		// role doesn't exist yet -- create it and retry
		log.Warn().Err(err).Str("UserID", userID).Msg("role does not exist")
		if err := trx.Rollback(context.Background()); err != nil {
			log.Error().Err(err).Str("UserID", userID).Msg("rollback failed")
		}
		if err := createUser(userID); err != nil {
			return nil, err
		}
		return TrxForUser(userID)
	}

	return trx, nil
}
