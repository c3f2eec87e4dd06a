// Package memory provides the in-memory resource store. It is the reference
// implementation behind the repository ports: tests run against it directly
// and production deployments can swap in the mongo implementation without
// touching callers.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

// Store keeps every entity kind in its own map guarded by one mutex, with a
// per-kind monotonic id counter. Ids are never reused, even after deletion.
// Deletes do not cascade; dangling foreign keys are left intact.
type Store struct {
	mu sync.RWMutex

	users    map[int]*domain.User
	clients  map[int]*domain.Client
	orders   map[int]*domain.Order
	invoices map[int]*domain.Invoice

	userSeq    int
	clientSeq  int
	orderSeq   int
	invoiceSeq int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[int]*domain.User),
		clients:  make(map[int]*domain.Client),
		orders:   make(map[int]*domain.Order),
		invoices: make(map[int]*domain.Invoice),
	}
}

// sortedIDs returns the keys of m in ascending order. Ids are assigned
// monotonically, so ascending id order is insertion order.
func sortedIDs[V any](m map[int]*V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// --- Users ---

// Users returns a view of the store implementing ports.UserRepository.
func (s *Store) Users() *UserStore { return &UserStore{s} }

type UserStore struct{ s *Store }

func (u *UserStore) Get(ctx context.Context, id int) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	rec, ok := u.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *rec
	return &clone, nil
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, id := range sortedIDs(u.s.users) {
		if u.s.users[id].Username == username {
			clone := *u.s.users[id]
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (u *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	out := make([]*domain.User, 0, len(u.s.users))
	for _, id := range sortedIDs(u.s.users) {
		clone := *u.s.users[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (u *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	u.s.userSeq++
	stored := *user
	stored.ID = u.s.userSeq
	u.s.users[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (u *UserStore) Update(ctx context.Context, id int, fields ports.UpdateUserFields) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	rec, ok := u.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if fields.Username != nil {
		rec.Username = *fields.Username
	}
	if fields.PasswordHash != nil {
		rec.PasswordHash = *fields.PasswordHash
	}
	if fields.Name != nil {
		rec.Name = *fields.Name
	}
	if fields.Email != nil {
		rec.Email = *fields.Email
	}
	if fields.Role != nil {
		rec.Role = *fields.Role
	}
	clone := *rec
	return &clone, nil
}

func (u *UserStore) Delete(ctx context.Context, id int) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return false, nil
	}
	delete(u.s.users, id)
	return true, nil
}

// --- Clients ---

// Clients returns a view of the store implementing ports.ClientRepository.
func (s *Store) Clients() *ClientStore { return &ClientStore{s} }

type ClientStore struct{ s *Store }

func (c *ClientStore) Get(ctx context.Context, id int) (*domain.Client, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	rec, ok := c.s.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *rec
	return &clone, nil
}

func (c *ClientStore) List(ctx context.Context) ([]*domain.Client, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	out := make([]*domain.Client, 0, len(c.s.clients))
	for _, id := range sortedIDs(c.s.clients) {
		clone := *c.s.clients[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (c *ClientStore) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.clientSeq++
	stored := *client
	stored.ID = c.s.clientSeq
	c.s.clients[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (c *ClientStore) Update(ctx context.Context, id int, fields ports.UpdateClientInput) (*domain.Client, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	rec, ok := c.s.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	if fields.Name != nil {
		rec.Name = *fields.Name
	}
	if fields.Email != nil {
		rec.Email = *fields.Email
	}
	if fields.Phone != nil {
		rec.Phone = *fields.Phone
	}
	if fields.Agency != nil {
		rec.Agency = *fields.Agency
	}
	if fields.Position != nil {
		rec.Position = *fields.Position
	}
	if fields.Notes != nil {
		rec.Notes = *fields.Notes
	}
	clone := *rec
	return &clone, nil
}

func (c *ClientStore) Delete(ctx context.Context, id int) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.clients[id]; !ok {
		return false, nil
	}
	delete(c.s.clients, id)
	return true, nil
}

// --- Orders ---

// Orders returns a view of the store implementing ports.OrderRepository.
func (s *Store) Orders() *OrderStore { return &OrderStore{s} }

type OrderStore struct{ s *Store }

func (o *OrderStore) Get(ctx context.Context, id int) (*domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	rec, ok := o.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *rec
	return &clone, nil
}

func (o *OrderStore) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	out := make([]*domain.Order, 0, len(o.s.orders))
	for _, id := range sortedIDs(o.s.orders) {
		rec := o.s.orders[id]
		if filter.ClientID != 0 && rec.ClientID != filter.ClientID {
			continue
		}
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (o *OrderStore) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	o.s.orderSeq++
	stored := *order
	stored.ID = o.s.orderSeq
	o.s.orders[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (o *OrderStore) Update(ctx context.Context, id int, fields ports.UpdateOrderInput) (*domain.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	rec, ok := o.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if fields.ClientID != nil {
		rec.ClientID = *fields.ClientID
	}
	if fields.Title != nil {
		rec.Title = *fields.Title
	}
	if fields.Description != nil {
		rec.Description = *fields.Description
	}
	if fields.TweetURL != nil {
		rec.TweetURL = *fields.TweetURL
	}
	if fields.Status != nil {
		rec.Status = *fields.Status
	}
	if fields.Value != nil {
		rec.Value = *fields.Value
	}
	if fields.OrderDate != nil {
		rec.OrderDate = *fields.OrderDate
	}
	clone := *rec
	return &clone, nil
}

func (o *OrderStore) Delete(ctx context.Context, id int) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if _, ok := o.s.orders[id]; !ok {
		return false, nil
	}
	delete(o.s.orders, id)
	return true, nil
}

// --- Invoices ---

// Invoices returns a view of the store implementing ports.InvoiceRepository.
func (s *Store) Invoices() *InvoiceStore { return &InvoiceStore{s} }

type InvoiceStore struct{ s *Store }

func (i *InvoiceStore) Get(ctx context.Context, id int) (*domain.Invoice, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	rec, ok := i.s.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	clone := *rec
	return &clone, nil
}

func (i *InvoiceStore) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	out := make([]*domain.Invoice, 0, len(i.s.invoices))
	for _, id := range sortedIDs(i.s.invoices) {
		rec := i.s.invoices[id]
		if filter.OrderID != 0 && rec.OrderID != filter.OrderID {
			continue
		}
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (i *InvoiceStore) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	i.s.invoiceSeq++
	stored := *invoice
	stored.ID = i.s.invoiceSeq
	i.s.invoices[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (i *InvoiceStore) Update(ctx context.Context, id int, fields ports.UpdateInvoiceInput) (*domain.Invoice, error) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	rec, ok := i.s.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	if fields.OrderID != nil {
		rec.OrderID = *fields.OrderID
	}
	if fields.InvoiceNumber != nil {
		rec.InvoiceNumber = *fields.InvoiceNumber
	}
	if fields.Amount != nil {
		rec.Amount = *fields.Amount
	}
	if fields.Status != nil {
		rec.Status = *fields.Status
	}
	if fields.IssueDate != nil {
		rec.IssueDate = *fields.IssueDate
	}
	if fields.DueDate != nil {
		rec.DueDate = *fields.DueDate
	}
	if fields.Notes != nil {
		rec.Notes = *fields.Notes
	}
	if fields.PDFPath != nil {
		rec.PDFPath = *fields.PDFPath
	}
	clone := *rec
	return &clone, nil
}

func (i *InvoiceStore) Delete(ctx context.Context, id int) (bool, error) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	if _, ok := i.s.invoices[id]; !ok {
		return false, nil
	}
	delete(i.s.invoices, id)
	return true, nil
}

// --- Stats ---

// ComputeStats derives the dashboard aggregate from the maps as they are
// right now.
func (s *Store) ComputeStats(ctx context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Stats{TotalClients: len(s.clients)}
	for _, o := range s.orders {
		if o.Status == domain.OrderActive || o.Status == domain.OrderPending {
			stats.ActiveOrders++
		}
	}
	for _, inv := range s.invoices {
		switch inv.Status {
		case domain.InvoicePending:
			stats.PendingInvoices++
		case domain.InvoicePaid:
			stats.TotalRevenue += inv.Amount
		}
	}
	return stats, nil
}
