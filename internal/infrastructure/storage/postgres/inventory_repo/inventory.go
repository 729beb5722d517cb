// Package inventory_repo provides the PostgreSQL read model for group inventory.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain/inventory"
)

var tracer = otel.Tracer("backoffice/inventory_repo")

const tableName = "group_inventories"

var columns = []string{
	"id",
	"group_id",
	"departure_id",
	"service_type",
	"description",
	"currency",
	"total_qty",
	"assigned_qty",
	"confirmed_qty",
	"blocked_qty",
	"unit_cost",
	"note",
}

// Compile-time check that InventoryRepo implements inventory.Repository.
var _ inventory.Repository = (*InventoryRepo)(nil)

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	db      pgxscan.Querier
	builder squirrel.StatementBuilderType
}

// NewInventoryRepo creates a new inventory repository.
func NewInventoryRepo(db pgxscan.Querier) *InventoryRepo {
	return &InventoryRepo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns the inventory rows of a group ordered by id.
func (r *InventoryRepo) List(ctx context.Context, filter inventory.ListFilter) ([]inventory.Record, error) {
	ctx, span := tracer.Start(ctx, "inventory_repo.List", trace.WithAttributes(
		attribute.Int64("group_id", filter.GroupID),
	))
	defer span.End()

	query, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var records []inventory.Record
	if err := pgxscan.Select(ctx, r.db, &records, query, args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, apperror.NewDatabase(fmt.Errorf("list inventories: %w", err))
	}

	span.SetAttributes(attribute.Int("rows", len(records)))
	return records, nil
}

// Get returns one inventory row.
func (r *InventoryRepo) Get(ctx context.Context, id int64) (*inventory.Record, error) {
	ctx, span := tracer.Start(ctx, "inventory_repo.Get", trace.WithAttributes(
		attribute.Int64("inventory_id", id),
	))
	defer span.End()

	query, args, err := r.builder.
		Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var record inventory.Record
	if err := pgxscan.Get(ctx, r.db, &record, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inventory", id)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, apperror.NewDatabase(fmt.Errorf("get inventory %d: %w", id, err))
	}

	return &record, nil
}

func (r *InventoryRepo) listQuery(filter inventory.ListFilter) squirrel.SelectBuilder {
	q := r.builder.
		Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"group_id": filter.GroupID})

	if filter.DepartureID != nil {
		q = q.Where(squirrel.Eq{"departure_id": *filter.DepartureID})
	}
	if filter.Currency != "" {
		// Blank currencies count as the default, as in AggregateByCurrency.
		q = q.Where(squirrel.Expr("COALESCE(NULLIF(UPPER(TRIM(currency)), ''), ?) = ?",
			inventory.DefaultCurrency, filter.Currency))
	}

	return q.OrderBy("id")
}
