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

package alerts

import (
	"context"
	"time"

	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/database"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Save inserts a new alert owned by userID, assigning its ID.
func Save(ctx context.Context, userID string, alert *Alert) error {
	subLog := log.With().Str("UserID", userID).Str("Ticker", alert.Ticker).Logger()

	alert.ID = uuid.New()
	alert.UserID = userID
	alert.CreatedAt = time.Now().UTC()

	trx, err := database.TrxForUser(userID)
	if err != nil {
		subLog.Error().Err(err).Msg("could not begin transaction")
		return err
	}

	_, err = trx.Exec(ctx,
		`INSERT INTO alerts ("id", "user_id", "ticker", "condition", "threshold", "triggered", "created_at") VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		alert.ID, alert.UserID, alert.Ticker, string(alert.Condition), alert.Threshold, alert.Triggered, alert.CreatedAt)
	if err != nil {
		subLog.Error().Err(err).Msg("could not insert alert")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Err(err).Msg("rollback failed")
		}
		return err
	}

	return trx.Commit(ctx)
}

// ForUser returns all alerts owned by userID, newest first.
func ForUser(ctx context.Context, userID string) ([]*Alert, error) {
	subLog := log.With().Str("UserID", userID).Logger()

	trx, err := database.TrxForUser(userID)
	if err != nil {
		subLog.Error().Err(err).Msg("could not begin transaction")
		return nil, err
	}

	rows, err := trx.Query(ctx,
		`SELECT "id", "user_id", "ticker", "condition", "threshold", "triggered", "created_at", "triggered_at" FROM alerts WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		subLog.Error().Err(err).Msg("could not query alerts")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Err(err).Msg("rollback failed")
		}
		return nil, err
	}

	result := make([]*Alert, 0, 8)
	for rows.Next() {
		var alert Alert
		var condition string
		if err := rows.Scan(&alert.ID, &alert.UserID, &alert.Ticker, &condition, &alert.Threshold, &alert.Triggered, &alert.CreatedAt, &alert.TriggeredAt); err != nil {
			subLog.Error().Err(err).Msg("could not scan alert row")
			if err := trx.Rollback(ctx); err != nil {
				subLog.Error().Err(err).Msg("rollback failed")
			}
			return nil, err
		}
		alert.Condition = Condition(condition)
		result = append(result, &alert)
	}

	if err := trx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an alert owned by userID.
func Delete(ctx context.Context, userID string, id uuid.UUID) error {
	subLog := log.With().Str("UserID", userID).Str("AlertID", id.String()).Logger()

	trx, err := database.TrxForUser(userID)
	if err != nil {
		subLog.Error().Err(err).Msg("could not begin transaction")
		return err
	}

	if _, err := trx.Exec(ctx, `DELETE FROM alerts WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		subLog.Error().Err(err).Msg("could not delete alert")
		if err := trx.Rollback(ctx); err != nil {
			subLog.Error().Err(err).Msg("rollback failed")
		}
		return err
	}

	return trx.Commit(ctx)
}

// markTriggered records the trigger time for an alert.
func markTriggered(ctx context.Context, alert *Alert, when time.Time) error {
	trx, err := database.TrxForUser(alert.UserID)
	if err != nil {
		return err
	}

	if _, err := trx.Exec(ctx, `UPDATE alerts SET triggered = 't', triggered_at = $1 WHERE id = $2`, when, alert.ID); err != nil {
		if err := trx.Rollback(ctx); err != nil {
			log.Error().Err(err).Str("AlertID", alert.ID.String()).Msg("rollback failed")
		}
		return err
	}

	return trx.Commit(ctx)
}

// PurgeTriggered deletes alerts that fired more than maxAge ago. Returns
// the number of rows removed.
func PurgeTriggered(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	tag, err := database.Pool().Exec(ctx,
		`DELETE FROM alerts WHERE triggered = 't' AND triggered_at < $1`, cutoff)
	if err != nil {
		log.Error().Err(err).Time("Cutoff", cutoff).Msg("could not purge triggered alerts")
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Evaluate checks every untriggered alert against a live quote and
// persists any that fire. Quote failures skip the alert until the next
// sweep rather than failing the whole run.
func Evaluate(ctx context.Context, manager *data.Manager) {
	pool := database.Pool()

	rows, err := pool.Query(ctx,
		`SELECT "id", "user_id", "ticker", "condition", "threshold", "created_at" FROM alerts WHERE triggered = 'f'`)
	if err != nil {
		log.Error().Err(err).Msg("could not query active alerts")
		return
	}

	pending := make([]*Alert, 0, 32)
	for rows.Next() {
		var alert Alert
		var condition string
		if err := rows.Scan(&alert.ID, &alert.UserID, &alert.Ticker, &condition, &alert.Threshold, &alert.CreatedAt); err != nil {
			log.Error().Err(err).Msg("could not scan alert row")
			return
		}
		alert.Condition = Condition(condition)
		pending = append(pending, &alert)
	}

	for _, alert := range pending {
		quote, err := manager.GetQuote(ctx, alert.Ticker)
		if err != nil {
			log.Warn().Err(err).Str("Ticker", alert.Ticker).Msg("could not fetch quote for alert sweep")
			continue
		}
		if !alert.CheckTriggered(quote) {
			continue
		}
		if err := markTriggered(ctx, alert, time.Now().UTC()); err != nil {
			log.Error().Err(err).Str("AlertID", alert.ID.String()).Msg("could not mark alert triggered")
		}
	}
}
