// Package main provides a CLI tool for preparing a development database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/pkg/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS group_inventories (
	id            BIGSERIAL PRIMARY KEY,
	group_id      BIGINT NOT NULL,
	departure_id  BIGINT,
	service_type  TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	currency      TEXT NOT NULL DEFAULT 'ARS',
	total_qty     BIGINT NOT NULL DEFAULT 0,
	assigned_qty  BIGINT NOT NULL DEFAULT 0,
	confirmed_qty BIGINT NOT NULL DEFAULT 0,
	blocked_qty   BIGINT NOT NULL DEFAULT 0,
	unit_cost     NUMERIC(18,2),
	note          VARCHAR(1000)
);
CREATE INDEX IF NOT EXISTS idx_group_inventories_group ON group_inventories (group_id, departure_id);
`

// demoGroupID is the group the demo rows belong to.
const demoGroupID int64 = 1

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
		Service:     "backoffice-seed",
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema ready")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

type demoRow struct {
	departureID int64
	serviceType string
	description string
	currency    string
	total       int64
	assigned    int64
	confirmed   int64
	blocked     int64
	unitCost    string
	noteText    string
	financial   *inventory.FinancialMetadata
}

func demoRows() []demoRow {
	operator := int64(1)
	return []demoRow{
		{
			departureID: 1, serviceType: "hotel", description: "Double rooms, 5 nights",
			currency: "USD", total: 20, assigned: 14, confirmed: 10, blocked: 2, unitCost: "420",
			noteText: "Release 30 days before departure",
			financial: &inventory.FinancialMetadata{
				PricingMode:   inventory.PricingManual,
				OperatorID:    &operator,
				SaleUnitPrice: types.Some(types.MustMoney("560")),
				Taxable21:     types.Some(types.MustMoney("310.5")),
			},
		},
		{
			departureID: 1, serviceType: "bus", description: "Coach transfer",
			currency: "ars", total: 45, assigned: 38, confirmed: 45, unitCost: "18000",
			financial: &inventory.FinancialMetadata{
				PricingMode:        inventory.PricingTotalSale,
				BillingMode:        inventory.BillingManual,
				SaleTotalPrice:     types.Some(types.MustMoney("1020000")),
				TransferFeePercent: types.Some(types.MustMoney("1.5")),
			},
		},
		{
			departureID: 2, serviceType: "excursion", description: "City tour",
			currency: "USD", total: 10, assigned: 12, blocked: 1, unitCost: "35",
			noteText: "Operator confirms 48h ahead",
		},
	}
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM group_inventories WHERE group_id = $1", demoGroupID).Scan(&existing); err != nil {
		return fmt.Errorf("count demo rows: %w", err)
	}
	if existing > 0 {
		log.Infow("demo data already present, skipping", "group_id", demoGroupID, "rows", existing)
		return nil
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	batch := &pgx.Batch{}
	for _, row := range demoRows() {
		var note any
		if n := inventory.EncodeNote(row.noteText, row.financial); n != "" {
			note = n
		}
		sql, args, err := builder.
			Insert("group_inventories").
			Columns("group_id", "departure_id", "service_type", "description", "currency",
				"total_qty", "assigned_qty", "confirmed_qty", "blocked_qty", "unit_cost", "note").
			Values(demoGroupID, row.departureID, row.serviceType, row.description, row.currency,
				row.total, row.assigned, row.confirmed, row.blocked, row.unitCost, note).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		batch.Queue(sql, args...)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert demo row %d: %w", i, err)
		}
	}

	log.Infow("demo data seeded", "group_id", demoGroupID, "rows", batch.Len())
	return nil
}
