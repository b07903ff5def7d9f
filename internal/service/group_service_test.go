package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")
	carol := env.addFriend(t, "Carol")

	resp, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Roommates",
		Members: []string{env.userID, bob, carol, bob},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if resp.Msg.Group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if resp.Msg.Group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", resp.Msg.Group.Name)
	}
	if len(resp.Msg.Group.Members) != 3 {
		t.Errorf("members: expected 3, got %d", len(resp.Msg.Group.Members))
	}
	if resp.Msg.Group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateGroup_UnknownMember(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Strangers",
		Members: []string{env.userID, "someone-else"},
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestGetGroup_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{ID: "nonexistent-id"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestUpdateAndDeleteGroup(t *testing.T) {
	env := setupTestServer(t)
	bob := env.addFriend(t, "Bob")
	ctx := context.Background()

	created, err := env.groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Original Name",
		Members: []string{env.userID},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	id := created.Msg.Group.ID

	updated, err := env.groups.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		ID:      id,
		Name:    "Updated Name",
		Members: []string{env.userID, bob},
	}))
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if updated.Msg.Group.Name != "Updated Name" || len(updated.Msg.Group.Members) != 2 {
		t.Errorf("update not applied: %+v", updated.Msg.Group)
	}

	list, err := env.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list.Msg.Groups) != 1 {
		t.Errorf("expected 1 group, got %d", len(list.Msg.Groups))
	}

	if _, err := env.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{ID: id})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	_, err = env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{ID: id}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = env.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{ID: id}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestFriends(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.friends.AddFriend(ctx, connect.NewRequest(&api.AddFriendRequest{Name: "Bob", Email: "not-an-email"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	bob := env.addFriend(t, "Bob")
	env.addFriend(t, "Alice")

	list, err := env.friends.ListFriends(ctx, connect.NewRequest(&api.ListFriendsRequest{}))
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	if len(list.Msg.Friends) != 2 || list.Msg.Friends[0].Name != "Alice" {
		t.Errorf("expected friends ordered by name, got %+v", list.Msg.Friends)
	}

	got, err := env.friends.GetFriend(ctx, connect.NewRequest(&api.GetFriendRequest{ID: bob}))
	if err != nil || got.Msg.Friend.Name != "Bob" {
		t.Fatalf("GetFriend: %+v, %v", got, err)
	}

	if _, err := env.friends.DeleteFriend(ctx, connect.NewRequest(&api.DeleteFriendRequest{ID: bob})); err != nil {
		t.Fatalf("DeleteFriend failed: %v", err)
	}
	_, err = env.friends.GetFriend(ctx, connect.NewRequest(&api.GetFriendRequest{ID: bob}))
	expectCode(t, err, connect.CodeNotFound)
}
