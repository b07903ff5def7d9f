package service

import (
	"fmt"
	"strings"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/money"
	"github.com/splitease/splitease/pkg/api"
)

func userToAPI(u *models.User) *api.User {
	return &api.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	shares := make([]api.Share, len(e.Participants))
	for i, p := range e.Participants {
		shares[i] = api.Share{UserID: p.UserID, Amount: money.Format(p.Amount)}
	}
	out := &api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       money.Format(e.Amount),
		PaidBy:       e.PaidBy,
		Participants: shares,
		SplitType:    string(e.SplitType),
		IsPayment:    e.IsPayment,
		GroupID:      e.GroupID,
		Category:     e.Category,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
	}
	if !e.Date.IsZero() {
		out.Date = e.Date.Format(dateLayout)
	}
	return out
}

func groupToAPI(g *models.Group) *api.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return &api.Group{ID: g.ID, Name: g.Name, Description: g.Description, Members: members, CreatedAt: g.CreatedAt}
}

func friendToAPI(f *models.Friend) *api.Friend {
	return &api.Friend{ID: f.ID, Name: f.Name, Email: f.Email, CreatedAt: f.CreatedAt}
}

func settlementsToAPI(settlements []calculator.Settlement, name func(string) string) []*api.Settlement {
	out := make([]*api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = &api.Settlement{
			From:     s.From,
			FromName: name(s.From),
			To:       s.To,
			ToName:   name(s.To),
			Amount:   money.Format(s.Amount),
		}
	}
	return out
}

// sharesFromAPI parses participant shares. Missing amounts are zero.
func sharesFromAPI(shares []api.Share) ([]models.Share, error) {
	out := make([]models.Share, len(shares))
	for i, s := range shares {
		out[i].UserID = s.UserID
		if s.Amount == "" {
			continue
		}
		amount, err := money.Parse(s.Amount)
		if err != nil {
			return nil, fmt.Errorf("share of %s: %w", s.UserID, err)
		}
		out[i].Amount = amount
	}
	return out, nil
}

// defaultDescription summarizes who an expense is split with.
func defaultDescription(participants []models.Share, self string, name func(string) string) string {
	var names []string
	for _, p := range participants {
		if p.UserID != self {
			names = append(names, name(p.UserID))
		}
	}
	switch {
	case len(names) == 0:
		return "Personal expense"
	case len(names) <= 3:
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	default:
		return fmt.Sprintf("Split with %s and %d others", strings.Join(names[:2], ", "), len(names)-2)
	}
}
