package reporting

import (
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/shopspring/decimal"
)

// Métricas do resumo, na ordem de exibição
const (
	MetricTotalRevenue        = "totalRevenue"
	MetricTotalBookings       = "totalBookings"
	MetricAverageBookingValue = "averageBookingValue"
	MetricConfirmedBookings   = "confirmedBookings"
	MetricCompletedBookings   = "completedBookings"
	MetricPendingBookings     = "pendingBookings"
	MetricCancelledBookings   = "cancelledBookings"
	MetricCancellationRate    = "cancellationRate"
	MetricTotalValue          = "totalValue"
	MetricPromoBookings       = "promoBookings"
	MetricTotalVendors        = "totalVendors"
	MetricAverageRating       = "averageRating"
	MetricTotalAmount         = "totalAmount"
	MetricAverageAmount       = "averageAmount"
	MetricGroups              = "groups"
)

// Summarize calcula o resumo da variante de relatório.
// Função pura: nenhuma média é NaN, grupos vazios resultam em 0.
func Summarize(data domain.ReportData) domain.Summary {
	switch d := data.(type) {
	case *domain.RevenueData:
		return SummarizeRevenue(d.Rows)
	case *domain.BookingData:
		return SummarizeBookings(d.ByStatus, d.ByPromoCode)
	case *domain.VendorData:
		return SummarizeVendors(d.Vendors)
	case *domain.CustomData:
		return SummarizeCustom(d.Rows)
	}
	return domain.Summary{}
}

func SummarizeRevenue(rows []domain.AggregateRow) domain.Summary {
	revenue, bookings := totals(rows)

	return domain.Summary{
		{Key: MetricTotalRevenue, Value: toFloat(revenue)},
		{Key: MetricTotalBookings, Value: float64(bookings)},
		{Key: MetricAverageBookingValue, Value: average(revenue, bookings)},
	}
}

func SummarizeBookings(byStatus, byPromoCode []domain.AggregateRow) domain.Summary {
	value, bookings := totals(byStatus)

	counts := make(map[domain.BookingStatus]int64, len(byStatus))
	for _, row := range byStatus {
		counts[domain.BookingStatus(row.Key)] += row.Count
	}

	var promoBookings int64
	for _, row := range byPromoCode {
		if row.Key != domain.NoPromoCode && row.Key != "" {
			promoBookings += row.Count
		}
	}

	return domain.Summary{
		{Key: MetricTotalBookings, Value: float64(bookings)},
		{Key: MetricConfirmedBookings, Value: float64(counts[domain.BookingStatusConfirmed])},
		{Key: MetricCompletedBookings, Value: float64(counts[domain.BookingStatusCompleted])},
		{Key: MetricPendingBookings, Value: float64(counts[domain.BookingStatusPending])},
		{Key: MetricCancelledBookings, Value: float64(counts[domain.BookingStatusCancelled])},
		{Key: MetricCancellationRate, Value: percentage(counts[domain.BookingStatusCancelled], bookings)},
		{Key: MetricTotalValue, Value: toFloat(value)},
		{Key: MetricAverageBookingValue, Value: average(value, bookings)},
		{Key: MetricPromoBookings, Value: float64(promoBookings)},
	}
}

// SummarizeVendors calcula a nota média apenas entre fornecedores avaliados
func SummarizeVendors(vendors []domain.VendorAggregateRow) domain.Summary {
	revenue := decimal.Zero
	ratingSum := decimal.Zero
	var bookings, rated int64

	for _, v := range vendors {
		revenue = revenue.Add(decimal.NewFromFloat(v.Revenue))
		bookings += v.Bookings
		if v.ReviewCount > 0 {
			ratingSum = ratingSum.Add(decimal.NewFromFloat(v.Rating))
			rated++
		}
	}

	return domain.Summary{
		{Key: MetricTotalVendors, Value: float64(len(vendors))},
		{Key: MetricTotalBookings, Value: float64(bookings)},
		{Key: MetricTotalRevenue, Value: toFloat(revenue)},
		{Key: MetricAverageRating, Value: average(ratingSum, rated)},
	}
}

func SummarizeCustom(rows []domain.AggregateRow) domain.Summary {
	amount, bookings := totals(rows)

	return domain.Summary{
		{Key: MetricTotalBookings, Value: float64(bookings)},
		{Key: MetricTotalAmount, Value: toFloat(amount)},
		{Key: MetricAverageAmount, Value: average(amount, bookings)},
		{Key: MetricGroups, Value: float64(len(rows))},
	}
}

func totals(rows []domain.AggregateRow) (decimal.Decimal, int64) {
	sum := decimal.Zero
	var count int64
	for _, row := range rows {
		sum = sum.Add(decimal.NewFromFloat(row.TotalAmount))
		count += row.Count
	}
	return sum, count
}

func average(sum decimal.Decimal, count int64) float64 {
	if count == 0 {
		return 0
	}
	return toFloat(sum.Div(decimal.NewFromInt(count)))
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return toFloat(decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(total)))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
