package entity

// Actor is the identity issuing a request, as resolved by the
// authentication layer. It is passed explicitly into every authorization
// and lifecycle call; nothing in the core reads it from ambient state.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// IsAdmin returns true if the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// User is a registered account backing an actor
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name,omitempty"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// AsActor converts a stored user into the actor identity used by the core
func (u *User) AsActor() Actor {
	return Actor{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.DisplayName,
		Role:  u.Role,
	}
}
