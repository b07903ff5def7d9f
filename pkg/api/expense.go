package api

type CreateExpenseRequest struct {
	// Description defaults to a summary of the participants.
	Description  string  `json:"description" validate:"max=200"`
	Amount       string  `json:"amount" validate:"required,money"`
	PaidBy       string  `json:"paid_by" validate:"required"`
	Participants []Share `json:"participants" validate:"required,min=1,dive"`
	// SplitType defaults to "equal".
	SplitType string `json:"split_type" validate:"split_type,ne=payment"`
	GroupID   string `json:"group_id,omitempty"`
	Category  string `json:"category,omitempty" validate:"max=50"`
	Notes     string `json:"notes,omitempty" validate:"max=1000"`
	// Date defaults to today.
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ID           string  `json:"id" validate:"required"`
	Description  string  `json:"description" validate:"max=200"`
	Amount       string  `json:"amount" validate:"required,money"`
	PaidBy       string  `json:"paid_by" validate:"required"`
	Participants []Share `json:"participants" validate:"required,min=1,dive"`
	SplitType    string  `json:"split_type" validate:"split_type,ne=payment"`
	GroupID      string  `json:"group_id,omitempty"`
	Category     string  `json:"category,omitempty" validate:"max=50"`
	Notes        string  `json:"notes,omitempty" validate:"max=1000"`
	Date         string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteExpenseResponse struct{}

// ListExpensesRequest filters are optional; with both set, an expense must match both.
type ListExpensesRequest struct {
	GroupID  string `json:"group_id,omitempty"`
	FriendID string `json:"friend_id,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type RecordPaymentRequest struct {
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required,nefield=From"`
	Amount  string `json:"amount" validate:"required,money"`
	Date    string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes   string `json:"notes,omitempty" validate:"max=1000"`
	GroupID string `json:"group_id,omitempty"`
}

type RecordPaymentResponse struct {
	Expense *Expense `json:"expense"`
}
