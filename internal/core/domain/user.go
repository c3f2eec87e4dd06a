package domain

// Role names the permission bucket assigned to a user. The set is closed;
// anything else stored on a user record is treated as RoleUser at decision
// time (least privilege).
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
	RoleViewer = "viewer"
)

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleUser, RoleViewer:
		return true
	}
	return false
}

// User models an authenticated actor in the system. The credential hash is
// never serialized.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}
