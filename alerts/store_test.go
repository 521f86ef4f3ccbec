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

package alerts_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/pashagolub/pgxmock"

	"github.com/fundflow/ff-api/alerts"
	"github.com/fundflow/ff-api/database"
)

var _ = Describe("Alert store", func() {
	var dbPool pgxmock.PgxConnIface

	BeforeEach(func() {
		var err error
		dbPool, err = pgxmock.NewConn()
		Expect(err).To(BeNil())
		database.SetPool(dbPool)
	})

	Describe("Save", func() {
		It("inserts under the user's role", func() {
			dbPool.ExpectBegin()
			dbPool.ExpectExec("SET ROLE").WillReturnResult(pgconn.CommandTag("SET ROLE"))
			dbPool.ExpectExec("INSERT INTO alerts").WillReturnResult(pgconn.CommandTag("INSERT 0 1"))
			dbPool.ExpectCommit()

			alert := &alerts.Alert{Ticker: "AAPL", Condition: alerts.PriceAbove, Threshold: 250}
			Expect(alerts.Save(context.Background(), "user1", alert)).To(Succeed())
			Expect(alert.ID).NotTo(Equal(uuid.Nil))
			Expect(alert.UserID).To(Equal("user1"))
			Expect(dbPool.ExpectationsWereMet()).To(Succeed())
		})
	})

	Describe("ForUser", func() {
		It("scans the user's alerts", func() {
			created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
			id := uuid.New()

			dbPool.ExpectBegin()
			dbPool.ExpectExec("SET ROLE").WillReturnResult(pgconn.CommandTag("SET ROLE"))
			dbPool.ExpectQuery("SELECT (.+) FROM alerts WHERE user_id").WillReturnRows(
				pgxmock.NewRows([]string{"id", "user_id", "ticker", "condition", "threshold", "triggered", "created_at", "triggered_at"}).
					AddRow(id, "user1", "AAPL", "above", 250.0, false, created, nil))
			dbPool.ExpectCommit()

			result, err := alerts.ForUser(context.Background(), "user1")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal(id))
			Expect(result[0].Condition).To(Equal(alerts.PriceAbove))
			Expect(result[0].Threshold).To(Equal(250.0))
			Expect(result[0].TriggeredAt).To(BeNil())
			Expect(dbPool.ExpectationsWereMet()).To(Succeed())
		})
	})

	Describe("PurgeTriggered", func() {
		It("deletes old triggered alerts and reports the count", func() {
			dbPool.ExpectExec("DELETE FROM alerts WHERE triggered").WillReturnResult(pgconn.CommandTag("DELETE 3"))

			removed, err := alerts.PurgeTriggered(context.Background(), 30*24*time.Hour)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(int64(3)))
			Expect(dbPool.ExpectationsWereMet()).To(Succeed())
		})
	})

	Describe("Delete", func() {
		It("removes the alert inside the user's transaction", func() {
			id := uuid.New()

			dbPool.ExpectBegin()
			dbPool.ExpectExec("SET ROLE").WillReturnResult(pgconn.CommandTag("SET ROLE"))
			dbPool.ExpectExec("DELETE FROM alerts").WillReturnResult(pgconn.CommandTag("DELETE 1"))
			dbPool.ExpectCommit()

			Expect(alerts.Delete(context.Background(), "user1", id)).To(Succeed())
			Expect(dbPool.ExpectationsWereMet()).To(Succeed())
		})
	})
})
