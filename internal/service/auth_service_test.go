package service

import (
	"context"
	"net/http"
	"testing"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/pkg/api"
	"github.com/splitease/splitease/pkg/api/apiconnect"
)

func TestRegister(t *testing.T) {
	env := setupTestServer(t)

	if env.userID == "" || env.token == "" {
		t.Fatal("expected user ID and token from Register")
	}

	_, err := env.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email: "ME@example.com", DisplayName: "Me again", Password: "password123",
	}))
	expectCode(t, err, connect.CodeAlreadyExists)
}

func TestRegister_Validation(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		req  *api.RegisterRequest
	}{
		{"bad email", &api.RegisterRequest{Email: "nope", DisplayName: "X", Password: "password123"}},
		{"short password", &api.RegisterRequest{Email: "x@example.com", DisplayName: "X", Password: "short"}},
		{"missing name", &api.RegisterRequest{Email: "x@example.com", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestLogin(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email: "me@example.com", Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.User.ID != env.userID {
		t.Errorf("expected user %s, got %s", env.userID, resp.Msg.User.ID)
	}
	if resp.Msg.Token == "" || resp.Msg.ExpiresAt == 0 {
		t.Error("expected token and expiry")
	}

	_, err = env.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email: "me@example.com", Password: "wrong-password",
	}))
	expectCode(t, err, connect.CodeUnauthenticated)
}

func TestGetCurrentUser(t *testing.T) {
	env := setupTestServer(t)

	authed := apiconnect.NewAuthServiceClient(http.DefaultClient, env.url, connect.WithInterceptors(bearer(env.token)))
	resp, err := authed.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if resp.Msg.User.ID != env.userID || resp.Msg.User.DisplayName != "Me" {
		t.Errorf("unexpected user: %+v", resp.Msg.User)
	}

	_, err = env.auth.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	expectCode(t, err, connect.CodeUnauthenticated)
}

func TestServicesRequireToken(t *testing.T) {
	env := setupTestServer(t)

	anon := apiconnect.NewBalanceServiceClient(http.DefaultClient, env.url)
	_, err := anon.GetTotals(context.Background(), connect.NewRequest(&api.GetTotalsRequest{}))
	expectCode(t, err, connect.CodeUnauthenticated)

	forged := apiconnect.NewBalanceServiceClient(http.DefaultClient, env.url, connect.WithInterceptors(bearer("forged")))
	_, err = forged.GetTotals(context.Background(), connect.NewRequest(&api.GetTotalsRequest{}))
	expectCode(t, err, connect.CodeUnauthenticated)
}
