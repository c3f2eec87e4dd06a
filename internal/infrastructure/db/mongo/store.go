package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// Store bundles the MongoDB-backed repositories behind the same accessor
// shape as the in-memory store, so wiring picks a driver and nothing else
// changes.
type Store struct {
	db      *mongo.Database
	seq     *counters
	users   *UserRepository
	clients *ClientRepository
	orders  *OrderRepository
	invoice *InvoiceRepository
}

func NewStore(db *mongo.Database) *Store {
	seq := newCounters(db)
	return &Store{
		db:      db,
		seq:     seq,
		users:   NewUserRepository(db, seq),
		clients: NewClientRepository(db, seq),
		orders:  NewOrderRepository(db, seq),
		invoice: NewInvoiceRepository(db, seq),
	}
}

func (s *Store) Users() *UserRepository       { return s.users }
func (s *Store) Clients() *ClientRepository   { return s.clients }
func (s *Store) Orders() *OrderRepository     { return s.orders }
func (s *Store) Invoices() *InvoiceRepository { return s.invoice }

// EnsureIndexes creates the secondary indexes every repository relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := s.orders.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.invoice.EnsureIndexes(ctx)
}

// ComputeStats derives the dashboard aggregate with counts and one revenue
// aggregation. Recomputed per call; nothing is cached.
func (s *Store) ComputeStats(ctx context.Context) (*domain.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats := &domain.Stats{}

	totalClients, err := s.db.Collection(collectionClients).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.TotalClients = int(totalClients)

	activeOrders, err := s.db.Collection(collectionOrders).CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []string{string(domain.OrderPending), string(domain.OrderActive)}},
	})
	if err != nil {
		return nil, err
	}
	stats.ActiveOrders = int(activeOrders)

	pendingInvoices, err := s.db.Collection(collectionInvoices).CountDocuments(ctx, bson.M{
		"status": string(domain.InvoicePending),
	})
	if err != nil {
		return nil, err
	}
	stats.PendingInvoices = int(pendingInvoices)

	cursor, err := s.db.Collection(collectionInvoices).Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": string(domain.InvoicePaid)}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	if len(result) > 0 {
		stats.TotalRevenue = result[0].Total
	}

	return stats, nil
}
