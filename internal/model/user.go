package model

// User represents a row in users.csv.
type User struct {
	Username     string
	PasswordHash string // bcrypt hash, never the plaintext
}
