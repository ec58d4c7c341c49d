// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/alokyadav9045/travellr-sub002/infrastructure/database/postgres"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/pkg/errors"
)

const (
	bookingsTable = "bookings b"
	vendorsJoin   = "vendors v ON v.id = b.vendor_id"
	groupKeyAlias = "group_key"
)

// BookingAggregateRepository executa agregações sobre as reservas.
// Resultado vazio é válido e retorna slice vazio sem erro.
type BookingAggregateRepository interface {
	Aggregate(ctx context.Context, query domain.AggregateQuery) ([]domain.AggregateRow, error)
	AggregateVendors(ctx context.Context, query domain.AggregateQuery) ([]domain.VendorAggregateRow, error)
}

type bookingAggregateRepository struct {
	conn postgres.Queryer
}

func NewBookingAggregateRepository(conn postgres.Queryer) BookingAggregateRepository {
	return &bookingAggregateRepository{
		conn: conn,
	}
}

// groupKeyExpression retorna a expressão SQL da chave de agrupamento
func groupKeyExpression(groupBy domain.GroupBy) (string, error) {
	switch groupBy {
	case domain.GroupByDay:
		return "to_char(b.created_at, 'YYYY-MM-DD')", nil
	case domain.GroupByWeek:
		return `to_char(b.created_at, 'IYYY-"W"IW')`, nil
	case domain.GroupByMonth:
		return "to_char(b.created_at, 'YYYY-MM')", nil
	case domain.GroupByStatus:
		return "b.status", nil
	case domain.GroupByVendor:
		return "b.vendor_id", nil
	case domain.GroupByPromoCode:
		return fmt.Sprintf("COALESCE(NULLIF(b.promo_code, ''), '%s')", domain.NoPromoCode), nil
	}
	return "", fmt.Errorf("agrupamento não suportado: %q", groupBy)
}

func applyFilters(builder squirrel.SelectBuilder, query domain.AggregateQuery) squirrel.SelectBuilder {
	builder = builder.
		Where(squirrel.GtOrEq{"b.created_at": query.Period.Start}).
		Where(squirrel.Lt{"b.created_at": query.Period.EndExclusive()})

	if len(query.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"b.status": domain.StatusStrings(query.Statuses)})
	}

	if query.VendorID != "" {
		builder = builder.Where(squirrel.Eq{"b.vendor_id": query.VendorID})
	}

	return builder
}

func (r *bookingAggregateRepository) Aggregate(ctx context.Context, query domain.AggregateQuery) ([]domain.AggregateRow, error) {
	keyExpr, err := groupKeyExpression(query.GroupBy)
	if err != nil {
		return nil, err
	}

	queryBuilder := squirrel.
		Select(
			keyExpr+" AS "+groupKeyAlias,
			"COUNT(*) AS bookings",
			"COALESCE(SUM(b.total_amount), 0) AS total_amount",
			"COALESCE(AVG(b.total_amount), 0) AS average_amount",
		).
		From(bookingsTable).
		GroupBy(groupKeyAlias).
		OrderBy(groupKeyAlias + " ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := applyFilters(queryBuilder, query).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de agregação")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de agregação")
	}
	defer rows.Close()

	result := make([]domain.AggregateRow, 0)
	for rows.Next() {
		var row domain.AggregateRow
		if err := rows.Scan(&row.Key, &row.Count, &row.TotalAmount, &row.AverageAmount); err != nil {
			return nil, errors.Wrap(err, "erro ao ler linha de agregação")
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar agregação")
	}

	return result, nil
}

func (r *bookingAggregateRepository) AggregateVendors(ctx context.Context, query domain.AggregateQuery) ([]domain.VendorAggregateRow, error) {
	if len(query.Statuses) == 0 {
		query.Statuses = domain.RevenueStatuses
	}

	queryBuilder := squirrel.
		Select(
			"b.vendor_id",
			"COALESCE(v.name, '') AS vendor_name",
			"COUNT(*) AS bookings",
			"COALESCE(SUM(b.total_amount), 0) AS revenue",
			"COALESCE(AVG(b.total_amount), 0) AS average_booking_value",
			"COALESCE(MAX(v.rating), 0) AS rating",
			"COALESCE(MAX(v.review_count), 0) AS review_count",
		).
		From(bookingsTable).
		LeftJoin(vendorsJoin).
		GroupBy("b.vendor_id", "v.name").
		OrderBy("revenue DESC", "b.vendor_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := applyFilters(queryBuilder, query).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de fornecedores")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de fornecedores")
	}
	defer rows.Close()

	result := make([]domain.VendorAggregateRow, 0)
	for rows.Next() {
		var row domain.VendorAggregateRow
		err := rows.Scan(
			&row.VendorID,
			&row.VendorName,
			&row.Bookings,
			&row.Revenue,
			&row.AverageBookingValue,
			&row.Rating,
			&row.ReviewCount,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler linha de fornecedor")
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar fornecedores")
	}

	return result, nil
}
