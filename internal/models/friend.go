package models

// Friend is a person the owner splits expenses with.
// A friend does not need an account; its ID is what appears on expenses.
type Friend struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	CreatedAt int64
}
