package repository

import (
	"context"
	"fmt"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	bookingsCollection = "bookings"
	vendorsCollection  = "vendors"
)

type mongoBookingAggregateRepository struct {
	bookings *mongo.Collection
}

func NewMongoBookingAggregateRepository(db *mongo.Database) BookingAggregateRepository {
	return &mongoBookingAggregateRepository{
		bookings: db.Collection(bookingsCollection),
	}
}

// groupKeyStage retorna a expressão de agrupamento do pipeline
func groupKeyStage(groupBy domain.GroupBy) (any, error) {
	dateKey := func(format string) bson.M {
		return bson.M{"$dateToString": bson.M{"format": format, "date": "$createdAt"}}
	}

	switch groupBy {
	case domain.GroupByDay:
		return dateKey("%Y-%m-%d"), nil
	case domain.GroupByWeek:
		return dateKey("%G-W%V"), nil
	case domain.GroupByMonth:
		return dateKey("%Y-%m"), nil
	case domain.GroupByStatus:
		return "$status", nil
	case domain.GroupByVendor:
		return "$vendorId", nil
	case domain.GroupByPromoCode:
		return bson.M{"$cond": bson.A{
			bson.M{"$gt": bson.A{bson.M{"$ifNull": bson.A{"$promoCode", ""}}, ""}},
			"$promoCode",
			domain.NoPromoCode,
		}}, nil
	}
	return nil, fmt.Errorf("agrupamento não suportado: %q", groupBy)
}

func matchStage(query domain.AggregateQuery) bson.D {
	filter := bson.D{
		{Key: "createdAt", Value: bson.M{
			"$gte": query.Period.Start,
			"$lt":  query.Period.EndExclusive(),
		}},
	}

	if len(query.Statuses) > 0 {
		filter = append(filter, bson.E{Key: "status", Value: bson.M{"$in": domain.StatusStrings(query.Statuses)}})
	}

	if query.VendorID != "" {
		filter = append(filter, bson.E{Key: "vendorId", Value: vendorIDMatch(query.VendorID)})
	}

	return bson.D{{Key: "$match", Value: filter}}
}

// vendorIDMatch aceita vendorId gravado como ObjectId ou como string
func vendorIDMatch(vendorID string) any {
	oid, err := primitive.ObjectIDFromHex(vendorID)
	if err != nil {
		return vendorID
	}
	return bson.M{"$in": bson.A{oid, vendorID}}
}

func (r *mongoBookingAggregateRepository) Aggregate(ctx context.Context, query domain.AggregateQuery) ([]domain.AggregateRow, error) {
	key, err := groupKeyStage(query.GroupBy)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		matchStage(query),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: key},
			{Key: "count", Value: bson.M{"$sum": 1}},
			{Key: "totalAmount", Value: bson.M{"$sum": "$totalAmount"}},
			{Key: "averageAmount", Value: bson.M{"$avg": "$totalAmount"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar o pipeline de agregação")
	}

	result := make([]domain.AggregateRow, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, errors.Wrap(err, "erro ao ler o pipeline de agregação")
	}

	if result == nil {
		result = make([]domain.AggregateRow, 0)
	}
	return result, nil
}

func (r *mongoBookingAggregateRepository) AggregateVendors(ctx context.Context, query domain.AggregateQuery) ([]domain.VendorAggregateRow, error) {
	if len(query.Statuses) == 0 {
		query.Statuses = domain.RevenueStatuses
	}

	pipeline := mongo.Pipeline{
		matchStage(query),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$vendorId"},
			{Key: "bookings", Value: bson.M{"$sum": 1}},
			{Key: "revenue", Value: bson.M{"$sum": "$totalAmount"}},
			{Key: "averageBookingValue", Value: bson.M{"$avg": "$totalAmount"}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: vendorsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "vendor"},
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$vendor", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.D{
			{Key: "vendorName", Value: bson.M{"$ifNull": bson.A{"$vendor.name", ""}}},
			{Key: "bookings", Value: 1},
			{Key: "revenue", Value: 1},
			{Key: "averageBookingValue", Value: 1},
			{Key: "rating", Value: bson.M{"$ifNull": bson.A{"$vendor.rating", 0}}},
			{Key: "reviewCount", Value: bson.M{"$ifNull": bson.A{"$vendor.reviewCount", 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar o pipeline de fornecedores")
	}

	result := make([]domain.VendorAggregateRow, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, errors.Wrap(err, "erro ao ler o pipeline de fornecedores")
	}

	if result == nil {
		result = make([]domain.VendorAggregateRow, 0)
	}
	return result, nil
}
