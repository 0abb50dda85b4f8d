package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/comandahq/comanda/internal/order"
	"github.com/comandahq/comanda/internal/window"
	"github.com/comandahq/comanda/pkg/enums/orderstatus"
)

// orderTTLSeconds is the store-driven expiry for order records: 90 days from
// creation, measured from createdAt regardless of later status changes.
const orderTTLSeconds = 7776000

type OrderRepo struct {
	collection *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{
		collection: db.Collection("orders"),
	}
}

// EnsureIndexes creates the TTL index on createdAt. The same index serves the
// window range queries.
func (r *OrderRepo) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(orderTTLSeconds),
	}

	if _, err := r.collection.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("cannot create order indexes: %w", err)
	}

	return nil
}

func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	if _, err := r.collection.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("cannot create order: %w", err)
	}

	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get order: %w", err)
	}
	return &o, nil
}

// ListInWindow returns the orders created inside the window, oldest first.
// Soft-deleted orders are excluded at the store.
func (r *OrderRepo) ListInWindow(ctx context.Context, w window.Window) ([]*order.Order, error) {
	endOp := "$lt"
	if w.IncludeEnd {
		endOp = "$lte"
	}

	filter := bson.M{
		"createdAt": bson.M{"$gte": w.Start, endOp: w.End},
		"status":    bson.M{"$ne": orderstatus.Deleted.Code()},
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*order.Order
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode orders: %w", err)
	}

	return result, nil
}

func (r *OrderRepo) Save(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	filter := bson.M{"_id": o.ID}
	update := bson.M{"$set": o}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update order: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}
