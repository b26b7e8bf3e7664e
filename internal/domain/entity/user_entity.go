package entity

// User is the aggregate root for the user domain.
// Password holds the bcrypt hash of the user's password, never the
// plaintext. The JSON tags match the on-disk users file layout.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
