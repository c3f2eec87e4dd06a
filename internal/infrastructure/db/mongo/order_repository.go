package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

const collectionOrders = "orders"

// orderDoc stores dates as ISO calendar strings so documents stay readable
// and comparisons stay date-precision.
type orderDoc struct {
	ID          int     `bson:"_id"`
	ClientID    int     `bson:"client_id"`
	Title       string  `bson:"title"`
	Description string  `bson:"description,omitempty"`
	TweetURL    string  `bson:"tweet_url,omitempty"`
	Status      string  `bson:"status"`
	Value       float64 `bson:"value"`
	OrderDate   string  `bson:"order_date,omitempty"`
}

func newOrderDoc(o *domain.Order) orderDoc {
	doc := orderDoc{
		ID:          o.ID,
		ClientID:    o.ClientID,
		Title:       o.Title,
		Description: o.Description,
		TweetURL:    o.TweetURL,
		Status:      string(o.Status),
		Value:       o.Value,
	}
	if !o.OrderDate.IsZero() {
		doc.OrderDate = o.OrderDate.String()
	}
	return doc
}

func (d orderDoc) toDomain() (*domain.Order, error) {
	o := &domain.Order{
		ID:          d.ID,
		ClientID:    d.ClientID,
		Title:       d.Title,
		Description: d.Description,
		TweetURL:    d.TweetURL,
		Status:      domain.OrderStatus(d.Status),
		Value:       d.Value,
	}
	if d.OrderDate != "" {
		date, err := domain.ParseDate(d.OrderDate)
		if err != nil {
			return nil, err
		}
		o.OrderDate = date
	}
	return o, nil
}

type OrderRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewOrderRepository(db *mongo.Database, seq *counters) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders), seq: seq}
}

func (r *OrderRepository) Get(ctx context.Context, id int) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ClientID != 0 {
		query["client_id"] = filter.ClientID
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, "orders")
	if err != nil {
		return nil, err
	}

	order.ID = id
	if _, err := r.col.InsertOne(ctx, newOrderDoc(order)); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) Update(ctx context.Context, id int, fields ports.UpdateOrderInput) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if fields.ClientID != nil {
		set["client_id"] = *fields.ClientID
	}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.TweetURL != nil {
		set["tweet_url"] = *fields.TweetURL
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}
	if fields.Value != nil {
		set["value"] = *fields.Value
	}
	if fields.OrderDate != nil {
		set["order_date"] = fields.OrderDate.String()
	}
	// An empty update still has to distinguish found from missing.
	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc orderDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *OrderRepository) Delete(ctx context.Context, id int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the client filter index.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}},
	})
	return err
}
