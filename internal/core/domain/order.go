package domain

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
	OrderCanceled  OrderStatus = "canceled"
)

// orderTransitions defines the allowed state machine transitions.
// completed and canceled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderActive, OrderCanceled},
	OrderActive:  {OrderCompleted, OrderCanceled},
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderActive, OrderCompleted, OrderCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a work item for a client. ClientID is a weak reference: the
// client may no longer exist.
type Order struct {
	ID          int         `json:"id"`
	ClientID    int         `json:"clientId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	TweetURL    string      `json:"tweetUrl,omitempty"`
	Status      OrderStatus `json:"status"`
	Value       float64     `json:"value"`
	OrderDate   Date        `json:"orderDate"`
}
