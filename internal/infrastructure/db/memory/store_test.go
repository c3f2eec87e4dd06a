package memory

import (
	"context"
	"testing"
	"time"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestClientStore_CreateAssignsMonotonicIDs(t *testing.T) {
	clients := NewStore().Clients()
	ctx := context.Background()

	first, err := clients.Create(ctx, &domain.Client{Name: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, _ := clients.Create(ctx, &domain.Client{Name: "B"})
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1,2 got %d,%d", first.ID, second.ID)
	}

	// Deleting must not free the id for reuse.
	if ok, _ := clients.Delete(ctx, second.ID); !ok {
		t.Fatalf("delete returned false for existing record")
	}
	third, _ := clients.Create(ctx, &domain.Client{Name: "C"})
	if third.ID != 3 {
		t.Fatalf("id reused after delete: got %d, want 3", third.ID)
	}
}

func TestClientStore_DeleteIdempotent(t *testing.T) {
	clients := NewStore().Clients()
	ctx := context.Background()

	created, _ := clients.Create(ctx, &domain.Client{Name: "A"})
	if ok, err := clients.Delete(ctx, created.ID); !ok || err != nil {
		t.Fatalf("first delete: ok=%v err=%v", ok, err)
	}
	if ok, err := clients.Delete(ctx, created.ID); ok || err != nil {
		t.Fatalf("second delete: ok=%v err=%v, want false,nil", ok, err)
	}
}

func TestClientStore_UpdatePreservesUnspecifiedFields(t *testing.T) {
	clients := NewStore().Clients()
	ctx := context.Background()

	created, _ := clients.Create(ctx, &domain.Client{
		Name: "Acme", Email: "a@acme.test", Phone: "123",
		Agency: "Acme Media", Position: "CEO", Notes: "vip",
	})

	updated, err := clients.Update(ctx, created.ID, ports.UpdateClientInput{Phone: strPtr("999")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "999" {
		t.Fatalf("phone not updated: %s", updated.Phone)
	}
	if updated.Name != "Acme" || updated.Email != "a@acme.test" ||
		updated.Agency != "Acme Media" || updated.Position != "CEO" || updated.Notes != "vip" {
		t.Fatalf("unspecified fields changed: %+v", updated)
	}
}

func TestClientStore_UpdateMissing(t *testing.T) {
	clients := NewStore().Clients()
	if _, err := clients.Update(context.Background(), 42, ports.UpdateClientInput{Name: strPtr("x")}); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestOrderStore_ListInsertionOrderAndFilter(t *testing.T) {
	orders := NewStore().Orders()
	ctx := context.Background()

	for i, clientID := range []int{1, 2, 1} {
		if _, err := orders.Create(ctx, &domain.Order{ClientID: clientID, Title: "t", Status: domain.OrderPending}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, _ := orders.List(ctx, ports.OrderFilter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
	for i, o := range all {
		if o.ID != i+1 {
			t.Fatalf("orders out of insertion order: pos %d has id %d", i, o.ID)
		}
	}

	mine, _ := orders.List(ctx, ports.OrderFilter{ClientID: 1})
	if len(mine) != 2 || mine[0].ID != 1 || mine[1].ID != 3 {
		t.Fatalf("client filter wrong: %+v", mine)
	}
}

func TestStore_DeleteClientLeavesOrdersDangling(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	client, _ := store.Clients().Create(ctx, &domain.Client{Name: "Acme"})
	order, _ := store.Orders().Create(ctx, &domain.Order{ClientID: client.ID, Title: "t", Status: domain.OrderActive})

	if ok, _ := store.Clients().Delete(ctx, client.ID); !ok {
		t.Fatalf("client delete failed")
	}

	got, err := store.Orders().Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("order vanished after client delete: %v", err)
	}
	if got.ClientID != client.ID {
		t.Fatalf("dangling clientId rewritten: %d", got.ClientID)
	}
}

func TestStore_ComputeStats(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	day := domain.NewDate(2025, time.March, 1)

	store.Clients().Create(ctx, &domain.Client{Name: "A"})
	store.Clients().Create(ctx, &domain.Client{Name: "B"})
	store.Orders().Create(ctx, &domain.Order{ClientID: 1, Status: domain.OrderActive, OrderDate: day})
	store.Orders().Create(ctx, &domain.Order{ClientID: 2, Status: domain.OrderCompleted, OrderDate: day})
	store.Invoices().Create(ctx, &domain.Invoice{OrderID: 1, Status: domain.InvoicePaid, Amount: 100})
	store.Invoices().Create(ctx, &domain.Invoice{OrderID: 1, Status: domain.InvoicePending, Amount: 50})

	stats, err := store.ComputeStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := domain.Stats{TotalClients: 2, ActiveOrders: 1, PendingInvoices: 1, TotalRevenue: 100}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}
}

func TestStore_StatsReflectCurrentState(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	store.Clients().Create(ctx, &domain.Client{Name: "A"})
	before, _ := store.ComputeStats(ctx)
	if before.TotalClients != 1 {
		t.Fatalf("expected 1 client, got %d", before.TotalClients)
	}

	store.Clients().Delete(ctx, 1)
	after, _ := store.ComputeStats(ctx)
	if after.TotalClients != 0 {
		t.Fatalf("stats stale after delete: %d", after.TotalClients)
	}
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	if _, err := users.Create(ctx, &domain.User{Username: "admin"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := users.Create(ctx, &domain.User{Username: "admin"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserStore_GetByUsername(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	users.Create(ctx, &domain.User{Username: "alice", Name: "Alice"})
	got, err := users.GetByUsername(ctx, "alice")
	if err != nil || got.Name != "Alice" {
		t.Fatalf("got %+v, %v", got, err)
	}
	if _, err := users.GetByUsername(ctx, "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInvoiceStore_FilterByOrder(t *testing.T) {
	invoices := NewStore().Invoices()
	ctx := context.Background()

	invoices.Create(ctx, &domain.Invoice{OrderID: 1, InvoiceNumber: "INV-1", Status: domain.InvoicePending})
	invoices.Create(ctx, &domain.Invoice{OrderID: 2, InvoiceNumber: "INV-2", Status: domain.InvoicePending})

	got, _ := invoices.List(ctx, ports.InvoiceFilter{OrderID: 2})
	if len(got) != 1 || got[0].InvoiceNumber != "INV-2" {
		t.Fatalf("order filter wrong: %+v", got)
	}
}

func TestTokenRevoker(t *testing.T) {
	r := NewTokenRevoker()
	ctx := context.Background()

	if revoked, _ := r.IsRevoked(ctx, "abc"); revoked {
		t.Fatalf("unknown jti reported revoked")
	}
	if err := r.Revoke(ctx, "abc", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := r.IsRevoked(ctx, "abc"); !revoked {
		t.Fatalf("jti not revoked")
	}

	// Zero TTL means the token is already expired; nothing to deny.
	if err := r.Revoke(ctx, "gone", 0); err != nil {
		t.Fatalf("revoke expired: %v", err)
	}
	if revoked, _ := r.IsRevoked(ctx, "gone"); revoked {
		t.Fatalf("expired token revoked")
	}
}
