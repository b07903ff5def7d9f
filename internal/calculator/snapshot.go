package calculator

import "github.com/splitease/splitease/internal/models"

// Snapshot is a consistent copy of one user's records, as delivered by the record store.
type Snapshot struct {
	// CurrentUserID is the authenticated user. Empty while authentication is pending.
	CurrentUserID string

	Expenses []models.Expense
	Friends  []models.Friend
	Groups   []models.Group
}

// Identifiers returns the current user followed by every friend ID.
// It is empty when there is no current user.
func (s *Snapshot) Identifiers() []string {
	if s.CurrentUserID == "" {
		return nil
	}
	ids := make([]string, 0, len(s.Friends)+1)
	ids = append(ids, s.CurrentUserID)
	for _, f := range s.Friends {
		ids = append(ids, f.ID)
	}
	return ids
}

// FriendByID returns the friend with the given ID, or nil.
func (s *Snapshot) FriendByID(id string) *models.Friend {
	for i := range s.Friends {
		if s.Friends[i].ID == id {
			return &s.Friends[i]
		}
	}
	return nil
}

// GroupByID returns the group with the given ID, or nil.
func (s *Snapshot) GroupByID(id string) *models.Group {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// ExpensesByGroup returns the expenses recorded against groupID.
func (s *Snapshot) ExpensesByGroup(groupID string) []models.Expense {
	var out []models.Expense
	for _, e := range s.Expenses {
		if e.GroupID == groupID {
			out = append(out, e)
		}
	}
	return out
}

// ExpensesByFriend returns the expenses paid by or shared with friendID.
func (s *Snapshot) ExpensesByFriend(friendID string) []models.Expense {
	var out []models.Expense
	for i := range s.Expenses {
		if s.Expenses[i].Involves(friendID) {
			out = append(out, s.Expenses[i])
		}
	}
	return out
}
