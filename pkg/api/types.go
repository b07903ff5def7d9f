package api

// User is an account as shown to its owner.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

// Share is one participant's part of an expense. For percentage splits Amount holds
// the percentage; it is converted to an amount when the expense is saved.
type Share struct {
	UserID string `json:"user_id" validate:"required"`
	Amount string `json:"amount,omitempty" validate:"amount"`
}

type Expense struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Amount       string  `json:"amount"`
	PaidBy       string  `json:"paid_by"`
	Participants []Share `json:"participants"`
	SplitType    string  `json:"split_type"`
	IsPayment    bool    `json:"is_payment"`
	GroupID      string  `json:"group_id,omitempty"`
	Category     string  `json:"category,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Date         string  `json:"date,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
	CreatedAt   int64    `json:"created_at"`
}

type Friend struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Settlement says From owes To Amount.
type Settlement struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Amount   string `json:"amount"`
}

// FriendBalance is the signed balance with one friend: positive when the friend owes
// the current user.
type FriendBalance struct {
	FriendID string `json:"friend_id"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
}
