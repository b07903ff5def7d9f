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

// CreateGroup persists a new group and its member list.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, group.OwnerID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_groups (id, owner_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, group.OwnerID, group.Name, group.Description, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		return insertMembers(ctx, tx, group)
	})
}

// GetGroup retrieves one of ownerID's groups.
func (s *SQLiteStore) GetGroup(ctx context.Context, ownerID, groupID string) (*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, description, created_at FROM expense_groups WHERE owner_id = ? AND id = ?",
		ownerID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	groups, err := scanGroups(rows)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err := loadMembers(ctx, s.db, groups); err != nil {
		return nil, err
	}
	return &groups[0], nil
}

// UpdateGroup rewrites a group's name, description and members.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	return s.withTx(ctx, group.OwnerID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE expense_groups SET name = ?, description = ? WHERE owner_id = ? AND id = ?",
			group.Name, group.Description, group.OwnerID, group.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		if err := requireAffected(res, "group", group.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
			return fmt.Errorf("failed to clear group members: %w", err)
		}
		return insertMembers(ctx, tx, group)
	})
}

// DeleteGroup removes a group. Its expenses are kept and detached from it.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, ownerID, groupID string) error {
	return s.withTx(ctx, ownerID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM expense_groups WHERE owner_id = ? AND id = ?", ownerID, groupID)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		if err := requireAffected(res, "group", groupID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE expenses SET group_id = NULL WHERE owner_id = ? AND group_id = ?",
			ownerID, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to detach group expenses: %w", err)
		}
		return nil
	})
}

// ListGroups returns ownerID's groups ordered by name.
func (s *SQLiteStore) ListGroups(ctx context.Context, ownerID string) ([]models.Group, error) {
	return listGroups(ctx, s.db, ownerID)
}

func listGroups(ctx context.Context, q queryer, ownerID string) ([]models.Group, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, owner_id, name, description, created_at FROM expense_groups WHERE owner_id = ? ORDER BY name, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	groups, err := scanGroups(rows)
	if err != nil {
		return nil, err
	}
	if err := loadMembers(ctx, q, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, group *models.Group) error {
	seen := make(map[string]bool, len(group.Members))
	position := 0
	for _, member := range group.Members {
		if member == "" || seen[member] {
			continue
		}
		seen[member] = true
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, member_id, position) VALUES (?, ?, ?)",
			group.ID, member, position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
		position++
	}
	return nil
}

// scanGroups drains and closes rows.
func scanGroups(rows *sql.Rows) ([]models.Group, error) {
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

func loadMembers(ctx context.Context, q queryer, groups []models.Group) error {
	if len(groups) == 0 {
		return nil
	}

	index := make(map[string]int, len(groups))
	args := make([]any, len(groups))
	for i, g := range groups {
		index[g.ID] = i
		args[i] = g.ID
	}

	rows, err := q.QueryContext(ctx,
		"SELECT group_id, member_id FROM group_members WHERE group_id IN ("+
			placeholders(len(args))+") ORDER BY group_id, position",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, memberID string
		if err := rows.Scan(&groupID, &memberID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		i := index[groupID]
		groups[i].Members = append(groups[i].Members, memberID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}
	return nil
}
