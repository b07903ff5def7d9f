package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

// CreateFriend persists a new friend of friend.OwnerID.
func (s *SQLiteStore) CreateFriend(ctx context.Context, friend *models.Friend) error {
	if friend.ID == "" {
		friend.ID = uuid.New().String()
	}
	if friend.CreatedAt == 0 {
		friend.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, friend.OwnerID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO friends (id, owner_id, name, email, created_at) VALUES (?, ?, ?, ?, ?)",
			friend.ID, friend.OwnerID, friend.Name, friend.Email, friend.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert friend: %w", err)
		}
		return nil
	})
}

// GetFriend retrieves one of ownerID's friends.
func (s *SQLiteStore) GetFriend(ctx context.Context, ownerID, friendID string) (*models.Friend, error) {
	f := &models.Friend{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, name, email, created_at FROM friends WHERE owner_id = ? AND id = ?",
		ownerID, friendID,
	).Scan(&f.ID, &f.OwnerID, &f.Name, &f.Email, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("friend %s: %w", friendID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}
	return f, nil
}

// DeleteFriend removes a friend. Expenses that reference them are left alone; the
// balance engine reports them as unknown identifiers.
func (s *SQLiteStore) DeleteFriend(ctx context.Context, ownerID, friendID string) error {
	return s.withTx(ctx, ownerID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM friends WHERE owner_id = ? AND id = ?", ownerID, friendID)
		if err != nil {
			return fmt.Errorf("failed to delete friend: %w", err)
		}
		return requireAffected(res, "friend", friendID)
	})
}

// ListFriends returns ownerID's friends ordered by name.
func (s *SQLiteStore) ListFriends(ctx context.Context, ownerID string) ([]models.Friend, error) {
	return listFriends(ctx, s.db, ownerID)
}

func listFriends(ctx context.Context, q queryer, ownerID string) ([]models.Friend, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, owner_id, name, email, created_at FROM friends WHERE owner_id = ? ORDER BY name, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []models.Friend
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Email, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}
	return friends, nil
}
