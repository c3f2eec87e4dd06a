package domain

// Stats is the dashboard aggregate, recomputed on demand from current store
// state. Active orders count both pending and active; revenue sums paid
// invoices only.
type Stats struct {
	TotalClients    int     `json:"totalClients"`
	ActiveOrders    int     `json:"activeOrders"`
	PendingInvoices int     `json:"pendingInvoices"`
	TotalRevenue    float64 `json:"totalRevenue"`
}
