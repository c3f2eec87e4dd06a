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

const collectionInvoices = "invoices"

type invoiceDoc struct {
	ID            int     `bson:"_id"`
	OrderID       int     `bson:"order_id"`
	InvoiceNumber string  `bson:"invoice_number"`
	Amount        float64 `bson:"amount"`
	Status        string  `bson:"status"`
	IssueDate     string  `bson:"issue_date,omitempty"`
	DueDate       string  `bson:"due_date,omitempty"`
	Notes         string  `bson:"notes,omitempty"`
	PDFPath       string  `bson:"pdf_path,omitempty"`
}

func newInvoiceDoc(inv *domain.Invoice) invoiceDoc {
	doc := invoiceDoc{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		PDFPath:       inv.PDFPath,
	}
	if !inv.IssueDate.IsZero() {
		doc.IssueDate = inv.IssueDate.String()
	}
	if !inv.DueDate.IsZero() {
		doc.DueDate = inv.DueDate.String()
	}
	return doc
}

func (d invoiceDoc) toDomain() (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID:            d.ID,
		OrderID:       d.OrderID,
		InvoiceNumber: d.InvoiceNumber,
		Amount:        d.Amount,
		Status:        domain.InvoiceStatus(d.Status),
		Notes:         d.Notes,
		PDFPath:       d.PDFPath,
	}
	if d.IssueDate != "" {
		date, err := domain.ParseDate(d.IssueDate)
		if err != nil {
			return nil, err
		}
		inv.IssueDate = date
	}
	if d.DueDate != "" {
		date, err := domain.ParseDate(d.DueDate)
		if err != nil {
			return nil, err
		}
		inv.DueDate = date
	}
	return inv, nil
}

type InvoiceRepository struct {
	col *mongo.Collection
	seq *counters
}

func NewInvoiceRepository(db *mongo.Database, seq *counters) *InvoiceRepository {
	return &InvoiceRepository{col: db.Collection(collectionInvoices), seq: seq}
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc invoiceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *InvoiceRepository) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OrderID != 0 {
		query["order_id"] = filter.OrderID
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []invoiceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	invoices := make([]*domain.Invoice, 0, len(docs))
	for _, doc := range docs {
		inv, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, "invoices")
	if err != nil {
		return nil, err
	}

	invoice.ID = id
	if _, err := r.col.InsertOne(ctx, newInvoiceDoc(invoice)); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, id int, fields ports.UpdateInvoiceInput) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if fields.OrderID != nil {
		set["order_id"] = *fields.OrderID
	}
	if fields.InvoiceNumber != nil {
		set["invoice_number"] = *fields.InvoiceNumber
	}
	if fields.Amount != nil {
		set["amount"] = *fields.Amount
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}
	if fields.IssueDate != nil {
		set["issue_date"] = fields.IssueDate.String()
	}
	if fields.DueDate != nil {
		set["due_date"] = fields.DueDate.String()
	}
	if fields.Notes != nil {
		set["notes"] = *fields.Notes
	}
	if fields.PDFPath != nil {
		set["pdf_path"] = *fields.PDFPath
	}
	// An empty update still has to distinguish found from missing.
	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc invoiceDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the order filter index.
func (r *InvoiceRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}},
	})
	return err
}
