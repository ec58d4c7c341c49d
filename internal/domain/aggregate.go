package domain

import "fmt"

// GroupBy define a dimensão de agrupamento das agregações
type GroupBy string

const (
	GroupByDay       GroupBy = "day"
	GroupByWeek      GroupBy = "week"
	GroupByMonth     GroupBy = "month"
	GroupByStatus    GroupBy = "status"
	GroupByVendor    GroupBy = "vendor"
	GroupByPromoCode GroupBy = "promo_code"
)

// NoPromoCode é a chave usada para reservas sem código promocional
const NoPromoCode = "none"

var groupByValues = map[GroupBy]bool{
	GroupByDay:       true,
	GroupByWeek:      true,
	GroupByMonth:     true,
	GroupByStatus:    true,
	GroupByVendor:    true,
	GroupByPromoCode: true,
}

func (g GroupBy) IsValid() bool {
	return groupByValues[g]
}

// IsTimeBucket indica se o agrupamento é temporal
func (g GroupBy) IsTimeBucket() bool {
	return g == GroupByDay || g == GroupByWeek || g == GroupByMonth
}

func ParseGroupBy(value string, fallback GroupBy) (GroupBy, error) {
	if value == "" {
		return fallback, nil
	}
	g := GroupBy(value)
	if !g.IsValid() {
		return "", fmt.Errorf("invalid group_by: %s", value)
	}
	return g, nil
}

// AggregateQuery descreve uma agregação sobre a coleção de reservas
type AggregateQuery struct {
	Period   Period
	GroupBy  GroupBy
	Statuses []BookingStatus
	VendorID string
}

// AggregateRow é uma linha derivada calculada pelo banco, nunca alterada
type AggregateRow struct {
	Key           string  `json:"key" bson:"_id"`
	Count         int64   `json:"bookings" bson:"count"`
	TotalAmount   float64 `json:"totalAmount" bson:"totalAmount"`
	AverageAmount float64 `json:"averageAmount" bson:"averageAmount"`
}

func (r AggregateRow) Record() Record {
	return Record{
		{Name: "key", Value: r.Key},
		{Name: "bookings", Value: r.Count},
		{Name: "totalAmount", Value: r.TotalAmount},
		{Name: "averageAmount", Value: r.AverageAmount},
	}
}

// VendorAggregateRow é o resultado agregado por fornecedor
type VendorAggregateRow struct {
	VendorID            string  `json:"vendorId" bson:"_id"`
	VendorName          string  `json:"vendorName" bson:"vendorName"`
	Bookings            int64   `json:"bookings" bson:"bookings"`
	Revenue             float64 `json:"revenue" bson:"revenue"`
	AverageBookingValue float64 `json:"averageBookingValue" bson:"averageBookingValue"`
	Rating              float64 `json:"rating" bson:"rating"`
	ReviewCount         int64   `json:"reviewCount" bson:"reviewCount"`
}

func (r VendorAggregateRow) Record() Record {
	return Record{
		{Name: "vendorId", Value: r.VendorID},
		{Name: "vendorName", Value: r.VendorName},
		{Name: "bookings", Value: r.Bookings},
		{Name: "revenue", Value: r.Revenue},
		{Name: "averageBookingValue", Value: r.AverageBookingValue},
		{Name: "rating", Value: r.Rating},
		{Name: "reviewCount", Value: r.ReviewCount},
	}
}
