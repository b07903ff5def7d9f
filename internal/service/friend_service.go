package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/pkg/api"
	"github.com/splitease/splitease/pkg/api/apiconnect"
)

var _ apiconnect.FriendServiceHandler = (*FriendService)(nil)

// FriendService implements the Connect FriendService.
type FriendService struct {
	store    storage.Store
	validate Validator
}

// NewFriendService creates a new FriendService with the given storage backend.
func NewFriendService(store storage.Store, validate Validator) *FriendService {
	return &FriendService{store: store, validate: validate}
}

// AddFriend adds a person the caller shares expenses with.
func (s *FriendService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddFriend request received", "user_id", userID, "name", req.Msg.Name)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	friend := &models.Friend{
		OwnerID: userID,
		Name:    strings.TrimSpace(req.Msg.Name),
		Email:   auth.NormalizeEmail(req.Msg.Email),
	}
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		slog.Error("AddFriend failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Friend added", "friend_id", friend.ID)
	return connect.NewResponse(&api.AddFriendResponse{Friend: friendToAPI(friend)}), nil
}

// GetFriend retrieves one of the caller's friends.
func (s *FriendService) GetFriend(ctx context.Context, req *connect.Request[api.GetFriendRequest]) (*connect.Response[api.GetFriendResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetFriend request received", "user_id", userID, "friend_id", req.Msg.ID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	friend, err := s.store.GetFriend(ctx, userID, req.Msg.ID)
	if err != nil {
		slog.Warn("GetFriend failed", "friend_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetFriendResponse{Friend: friendToAPI(friend)}), nil
}

// ListFriends returns the caller's friends ordered by name.
func (s *FriendService) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListFriends request received", "user_id", userID)

	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		slog.Error("ListFriends failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Friend, len(friends))
	for i := range friends {
		out[i] = friendToAPI(&friends[i])
	}
	return connect.NewResponse(&api.ListFriendsResponse{Friends: out}), nil
}

// DeleteFriend removes a friend. Expenses that mention them are kept; balance
// calculation skips the shares it can no longer attribute.
func (s *FriendService) DeleteFriend(ctx context.Context, req *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteFriend request received", "user_id", userID, "friend_id", req.Msg.ID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteFriend(ctx, userID, req.Msg.ID); err != nil {
		slog.Warn("DeleteFriend failed", "friend_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Friend deleted", "friend_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteFriendResponse{}), nil
}
