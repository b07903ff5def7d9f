package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/pkg/api"
	"github.com/splitease/splitease/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store    storage.Store
	validate Validator
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, validate Validator) *GroupService {
	return &GroupService{store: store, validate: validate}
}

// checkMembers rejects members who are neither the caller nor one of their friends.
func (s *GroupService) checkMembers(ctx context.Context, userID string, members []string) error {
	who, err := loadPeople(ctx, s.store, userID)
	if err != nil {
		return err
	}
	return who.requireKnown(members...)
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"user_id", userID,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.checkMembers(ctx, userID, req.Msg.Members); err != nil {
		return nil, toConnectError(err)
	}

	group := &models.Group{
		OwnerID:     userID,
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Members:     req.Msg.Members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	// Re-read so the response reflects the stored (deduplicated) member list.
	stored, err := s.store.GetGroup(ctx, userID, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: groupToAPI(stored)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroup request received", "user_id", userID, "group_id", req.Msg.ID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	group, err := s.store.GetGroup(ctx, userID, req.Msg.ID)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&api.GetGroupResponse{Group: groupToAPI(group)}), nil
}

// ListGroups retrieves all of the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received", "user_id", userID)

	groups, err := s.store.ListGroups(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i := range groups {
		out[i] = groupToAPI(&groups[i])
	}

	slog.Info("ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group or changes its members.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateGroup request received",
		"user_id", userID,
		"group_id", req.Msg.ID,
		"members_count", len(req.Msg.Members),
	)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.checkMembers(ctx, userID, req.Msg.Members); err != nil {
		return nil, toConnectError(err)
	}

	group := &models.Group{
		ID:          req.Msg.ID,
		OwnerID:     userID,
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Members:     req.Msg.Members,
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Warn("UpdateGroup failed", "group_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	stored, err := s.store.GetGroup(ctx, userID, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&api.UpdateGroupResponse{Group: groupToAPI(stored)}), nil
}

// DeleteGroup removes a group. Its expenses stay, detached from the group.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGroup request received", "user_id", userID, "group_id", req.Msg.ID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteGroup(ctx, userID, req.Msg.ID); err != nil {
		slog.Warn("DeleteGroup failed", "group_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}
