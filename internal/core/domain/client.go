package domain

// Client is a business contact. Orders reference clients by id; the
// reference is weak, so a client may be deleted while orders still point at
// it and readers must tolerate the dangling id.
type Client struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Agency   string `json:"agency"`
	Position string `json:"position"`
	Notes    string `json:"notes,omitempty"`
}
