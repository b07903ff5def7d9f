package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

const (
	expenseColumns = "id, owner_id, description, amount, paid_by, split_type, is_payment, group_id, category, notes, date, created_at"
	dateLayout     = "2006-01-02"
)

// CreateExpense persists a new expense with its participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, expense.OwnerID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			expense.ID, expense.OwnerID, expense.Description, expense.Amount.String(), expense.PaidBy,
			string(expense.SplitType), expense.IsPayment, nullString(expense.GroupID), expense.Category,
			nullString(expense.Notes), formatDate(expense.Date), expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		return insertParticipants(ctx, tx, expense)
	})
}

// GetExpense retrieves one of ownerID's expenses with its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, ownerID, expenseID string) (*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE owner_id = ? AND id = ?",
		ownerID, expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err := loadParticipants(ctx, s.db, expenses); err != nil {
		return nil, err
	}
	return &expenses[0], nil
}

// UpdateExpense replaces an existing expense. The participant list is rewritten.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return s.withTx(ctx, expense.OwnerID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE expenses
			SET description = ?, amount = ?, paid_by = ?, split_type = ?, is_payment = ?,
			    group_id = ?, category = ?, notes = ?, date = ?
			WHERE owner_id = ? AND id = ?`,
			expense.Description, expense.Amount.String(), expense.PaidBy, string(expense.SplitType),
			expense.IsPayment, nullString(expense.GroupID), expense.Category, nullString(expense.Notes),
			formatDate(expense.Date), expense.OwnerID, expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		if err := requireAffected(res, "expense", expense.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		return insertParticipants(ctx, tx, expense)
	})
}

// DeleteExpense removes an expense; participants cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	return s.withTx(ctx, ownerID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE owner_id = ? AND id = ?", ownerID, expenseID)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return requireAffected(res, "expense", expenseID)
	})
}

// ListExpenses returns ownerID's expenses, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, ownerID string) ([]models.Expense, error) {
	return listExpenses(ctx, s.db, ownerID)
}

func listExpenses(ctx context.Context, q queryer, ownerID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE owner_id = ? ORDER BY date DESC, created_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}
	if err := loadParticipants(ctx, q, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i, p := range expense.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, position, user_id, amount) VALUES (?, ?, ?, ?)",
			expense.ID, i, p.UserID, p.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// scanExpenses drains and closes rows.
func scanExpenses(rows *sql.Rows) ([]models.Expense, error) {
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e         models.Expense
			amount    string
			splitType string
			groupID   sql.NullString
			notes     sql.NullString
			date      string
		)
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Description, &amount, &e.PaidBy, &splitType,
			&e.IsPayment, &groupID, &e.Category, &notes, &date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		e.Amount = parseAmount(amount, "expense_id", e.ID)
		e.SplitType = models.SplitType(splitType)
		e.GroupID = groupID.String
		e.Notes = notes.String
		e.Date = parseDate(date)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// loadParticipants fills Participants for every expense with a single query.
func loadParticipants(ctx context.Context, q queryer, expenses []models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	index := make(map[string]int, len(expenses))
	args := make([]any, len(expenses))
	for i, e := range expenses {
		index[e.ID] = i
		args[i] = e.ID
	}

	rows, err := q.QueryContext(ctx,
		"SELECT expense_id, user_id, amount FROM expense_participants WHERE expense_id IN ("+
			placeholders(len(args))+") ORDER BY expense_id, position",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, userID, amount string
		if err := rows.Scan(&expenseID, &userID, &amount); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		share := parseAmount(amount, "expense_id", expenseID, "user_id", userID)
		i := index[expenseID]
		expenses[i].Participants = append(expenses[i].Participants, models.Share{UserID: userID, Amount: share})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

// parseAmount reads a stored amount. A malformed value is logged and read as zero, which
// the balance engine skips, so one corrupt row cannot hide the rest of the history.
func parseAmount(raw string, attrs ...any) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("Malformed stored amount", append(attrs, "amount", raw, "error", err)...)
		return decimal.Zero
	}
	return d
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
