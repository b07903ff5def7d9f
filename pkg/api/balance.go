package api

type CalculateBalancesRequest struct{}

type CalculateBalancesResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type GetTotalsRequest struct{}

type GetTotalsResponse struct {
	TotalOwedToUser string `json:"total_owed_to_user"`
	TotalUserOwes   string `json:"total_user_owes"`
	NetBalance      string `json:"net_balance"`
}

// GetFriendBalanceRequest with an empty FriendID returns every friend with an open balance.
type GetFriendBalanceRequest struct {
	FriendID string `json:"friend_id,omitempty"`
}

// GetFriendBalanceResponse lists signed balances with the caller. When a friend is named,
// Settlements holds every open settlement that friend is part of, including ones with
// the caller's other friends.
type GetFriendBalanceResponse struct {
	Balances    []*FriendBalance `json:"balances"`
	Settlements []*Settlement    `json:"settlements,omitempty"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupBalancesResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type SuggestPaymentRequest struct {
	FriendID string `json:"friend_id" validate:"required"`
}

// SuggestPaymentResponse carries a ready-to-submit payment, or Settled when nothing is owed.
type SuggestPaymentResponse struct {
	Settled bool                  `json:"settled"`
	Payment *RecordPaymentRequest `json:"payment,omitempty"`
}
