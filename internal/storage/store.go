// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitease/splitease/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no record.
var ErrNotFound = errors.New("not found")

// Records is a consistent copy of everything one user owns.
type Records struct {
	Expenses []models.Expense
	Friends  []models.Friend
	Groups   []models.Group
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns nil and no error when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines the record store: expenses, groups and friends scoped to an owner,
// plus change notifications. This abstraction allows swapping storage backends
// without changing the service layer.
type Store interface {
	UserStore

	// CreateExpense persists a new expense. ID and CreatedAt are filled in when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, ownerID, expenseID string) (*models.Expense, error)
	// UpdateExpense replaces an existing expense, participants included.
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, ownerID, expenseID string) error
	// ListExpenses returns the owner's expenses, newest first.
	ListExpenses(ctx context.Context, ownerID string) ([]models.Expense, error)

	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, ownerID, groupID string) (*models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, ownerID, groupID string) error
	ListGroups(ctx context.Context, ownerID string) ([]models.Group, error)

	CreateFriend(ctx context.Context, friend *models.Friend) error
	GetFriend(ctx context.Context, ownerID, friendID string) (*models.Friend, error)
	DeleteFriend(ctx context.Context, ownerID, friendID string) error
	ListFriends(ctx context.Context, ownerID string) ([]models.Friend, error)

	// LoadRecords reads all of the owner's records in one read transaction.
	LoadRecords(ctx context.Context, ownerID string) (*Records, error)

	// Subscribe delivers a signal after every committed write to the owner's records.
	// Signals coalesce; the receiver reloads with LoadRecords. cancel releases the channel.
	Subscribe(ownerID string) (changes <-chan struct{}, cancel func())

	// Close releases any resources held by the store.
	Close() error
}
