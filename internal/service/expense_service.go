package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/money"
	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/pkg/api"
	"github.com/splitease/splitease/pkg/api/apiconnect"
)

var errPaymentEdit = errors.New("payments cannot be edited; delete it and record a new one")

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store    storage.Store
	validate Validator
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store, validate Validator) *ExpenseService {
	return &ExpenseService{store: store, validate: validate}
}

// expenseFields is the editable part of an expense, shared by create and update.
type expenseFields struct {
	Description  string
	Amount       string
	PaidBy       string
	Participants []api.Share
	SplitType    string
	GroupID      string
	Category     string
	Notes        string
	Date         string
}

// build turns request fields into a validated expense owned by userID. Percentage
// shares are converted to amounts here.
func (s *ExpenseService) build(ctx context.Context, userID string, f expenseFields) (*models.Expense, error) {
	amount, err := money.ParsePositive(f.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	shares, err := sharesFromAPI(f.Participants)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(f.Date)
	if err != nil {
		return nil, err
	}

	who, err := loadPeople(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	ids := append([]string{f.PaidBy}, shareIDs(shares)...)
	if err := who.requireKnown(ids...); err != nil {
		return nil, err
	}
	if f.GroupID != "" {
		if _, err := s.store.GetGroup(ctx, userID, f.GroupID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", errUnknownGroup, f.GroupID)
			}
			return nil, err
		}
	}

	splitType := models.SplitType(f.SplitType)
	if splitType == "" {
		splitType = models.SplitEqual
	}
	expense := &models.Expense{
		OwnerID:      userID,
		Description:  f.Description,
		Amount:       amount,
		PaidBy:       f.PaidBy,
		Participants: shares,
		SplitType:    splitType,
		GroupID:      f.GroupID,
		Category:     f.Category,
		Notes:        f.Notes,
		Date:         date,
	}
	if err := models.MaterializeShares(expense); err != nil {
		return nil, err
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}
	if expense.Description == "" {
		expense.Description = defaultDescription(expense.Participants, userID, who.name)
	}
	return expense, nil
}

func shareIDs(shares []models.Share) []string {
	ids := make([]string, len(shares))
	for i, s := range shares {
		ids[i] = s.UserID
	}
	return ids
}

// CreateExpense records a new shared expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateExpense request received",
		"user_id", userID,
		"amount", req.Msg.Amount,
		"split_type", req.Msg.SplitType,
		"participants_count", len(req.Msg.Participants),
	)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	m := req.Msg
	expense, err := s.build(ctx, userID, expenseFields{
		Description: m.Description, Amount: m.Amount, PaidBy: m.PaidBy, Participants: m.Participants,
		SplitType: m.SplitType, GroupID: m.GroupID, Category: m.Category, Notes: m.Notes, Date: m.Date,
	})
	if err != nil {
		slog.Warn("CreateExpense rejected", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "description", expense.Description)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// GetExpense retrieves one of the caller's expenses.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetExpense request received", "user_id", userID, "expense_id", req.Msg.ID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	expense, err := s.store.GetExpense(ctx, userID, req.Msg.ID)
	if err != nil {
		slog.Warn("GetExpense failed", "expense_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// UpdateExpense replaces an expense. Payments cannot be edited.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateExpense request received", "user_id", userID, "expense_id", req.Msg.ID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	existing, err := s.store.GetExpense(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if existing.IsPayment {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errPaymentEdit)
	}

	m := req.Msg
	expense, err := s.build(ctx, userID, expenseFields{
		Description: m.Description, Amount: m.Amount, PaidBy: m.PaidBy, Participants: m.Participants,
		SplitType: m.SplitType, GroupID: m.GroupID, Category: m.Category, Notes: m.Notes, Date: m.Date,
	})
	if err != nil {
		slog.Warn("UpdateExpense rejected", "expense_id", m.ID, "error", err)
		return nil, toConnectError(err)
	}
	expense.ID = existing.ID
	expense.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", m.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense updated", "expense_id", expense.ID)
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// DeleteExpense removes an expense or payment.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteExpense request received", "user_id", userID, "expense_id", req.Msg.ID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteExpense(ctx, userID, req.Msg.ID); err != nil {
		slog.Warn("DeleteExpense failed", "expense_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns the caller's expenses, newest first, optionally restricted to a
// group and/or to expenses involving a friend.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListExpenses request received",
		"user_id", userID,
		"group_id", req.Msg.GroupID,
		"friend_id", req.Msg.FriendID,
	)

	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		slog.Error("ListExpenses failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	snap := &calculator.Snapshot{CurrentUserID: userID, Expenses: expenses}
	if req.Msg.GroupID != "" {
		snap.Expenses = snap.ExpensesByGroup(req.Msg.GroupID)
	}
	if req.Msg.FriendID != "" {
		snap.Expenses = snap.ExpensesByFriend(req.Msg.FriendID)
	}

	out := make([]*api.Expense, len(snap.Expenses))
	for i := range snap.Expenses {
		out[i] = expenseToAPI(&snap.Expenses[i])
	}

	slog.Info("ListExpenses successful", "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// RecordPayment records money handed from one person to another.
func (s *ExpenseService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RecordPayment request received",
		"user_id", userID,
		"from", req.Msg.From,
		"to", req.Msg.To,
		"amount", req.Msg.Amount,
	)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	amount, err := money.ParsePositive(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}
	date, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, err
	}
	who, err := loadPeople(ctx, s.store, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := who.requireKnown(req.Msg.From, req.Msg.To); err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.GroupID != "" {
		if _, err := s.store.GetGroup(ctx, userID, req.Msg.GroupID); err != nil {
			return nil, toConnectError(err)
		}
	}

	payment := models.NewPayment(userID, models.Payment{
		From:    req.Msg.From,
		To:      req.Msg.To,
		Amount:  amount,
		Date:    date,
		Notes:   req.Msg.Notes,
		GroupID: req.Msg.GroupID,
	}, who.name)

	if err := s.store.CreateExpense(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Payment recorded", "expense_id", payment.ID, "description", payment.Description)
	return connect.NewResponse(&api.RecordPaymentResponse{Expense: expenseToAPI(payment)}), nil
}
