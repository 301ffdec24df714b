package models

// User is the display identity of a logged-in account.
// Only Username is guaranteed; the backend may omit the other fields.
type User struct {
	ID       string
	Username string
	Email    string
	Phone    string
}

// DisplayName returns the username, or "User" when the backend sent none.
func (u User) DisplayName() string {
	if u.Username == "" {
		return "User"
	}
	return u.Username
}
