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

const collectionClients = "clients"

type clientDoc struct {
	ID       int    `bson:"_id"`
	Name     string `bson:"name"`
	Email    string `bson:"email,omitempty"`
	Phone    string `bson:"phone,omitempty"`
	Agency   string `bson:"agency,omitempty"`
	Position string `bson:"position,omitempty"`
	Notes    string `bson:"notes,omitempty"`
}

func (d clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:       d.ID,
		Name:     d.Name,
		Email:    d.Email,
		Phone:    d.Phone,
		Agency:   d.Agency,
		Position: d.Position,
		Notes:    d.Notes,
	}
}

type ClientRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewClientRepository(db *mongo.Database, seq *counters) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients), seq: seq}
}

func (r *ClientRepository) Get(ctx context.Context, id int) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clientDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []clientDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	clients := make([]*domain.Client, 0, len(docs))
	for _, doc := range docs {
		clients = append(clients, doc.toDomain())
	}
	return clients, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, "clients")
	if err != nil {
		return nil, err
	}

	doc := clientDoc{
		ID:       id,
		Name:     client.Name,
		Email:    client.Email,
		Phone:    client.Phone,
		Agency:   client.Agency,
		Position: client.Position,
		Notes:    client.Notes,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) Update(ctx context.Context, id int, fields ports.UpdateClientInput) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.Phone != nil {
		set["phone"] = *fields.Phone
	}
	if fields.Agency != nil {
		set["agency"] = *fields.Agency
	}
	if fields.Position != nil {
		set["position"] = *fields.Position
	}
	if fields.Notes != nil {
		set["notes"] = *fields.Notes
	}
	// An empty update still has to distinguish found from missing.
	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc clientDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
