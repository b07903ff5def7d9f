package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/middleware"
	"github.com/splitease/splitease/internal/storage/sqlite"
	"github.com/splitease/splitease/internal/validation"
	"github.com/splitease/splitease/internal/watch"
	"github.com/splitease/splitease/pkg/api"
	"github.com/splitease/splitease/pkg/api/apiconnect"
)

// testEnv is a running server with one registered user and clients signed in as them.
type testEnv struct {
	url      string
	store    *sqlite.SQLiteStore
	balance  *BalanceService
	auth     apiconnect.AuthServiceClient
	expenses apiconnect.ExpenseServiceClient
	groups   apiconnect.GroupServiceClient
	friends  apiconnect.FriendServiceClient
	balances apiconnect.BalanceServiceClient
	userID   string
	token    string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"), watch.NewHub())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	v, err := validation.New()
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	engine := calculator.NewEngine(calculator.LogObserver(slog.Default()))
	balance := NewBalanceService(store, engine, v, nil, 10*time.Millisecond, time.Minute)

	authed := connect.WithInterceptors(middleware.RequireAuth(tokens))
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store, bcrypt.MinCost), tokens, store, v, nil),
		connect.WithInterceptors(middleware.OptionalAuth(tokens)),
	))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, v), authed))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, v), authed))
	mux.Handle(apiconnect.NewFriendServiceHandler(NewFriendService(store, v), authed))
	mux.Handle(apiconnect.NewBalanceServiceHandler(balance, authed))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	env := &testEnv{
		url:     server.URL,
		store:   store,
		balance: balance,
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
	}

	resp, err := env.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       "me@example.com",
		DisplayName: "Me",
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	env.userID = resp.Msg.User.ID
	env.token = resp.Msg.Token

	withToken := connect.WithInterceptors(bearer(env.token))
	env.expenses = apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL, withToken)
	env.groups = apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL, withToken)
	env.friends = apiconnect.NewFriendServiceClient(http.DefaultClient, server.URL, withToken)
	env.balances = apiconnect.NewBalanceServiceClient(http.DefaultClient, server.URL, withToken)
	return env
}

// bearer attaches token to every outgoing request.
func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

func (env *testEnv) addFriend(t *testing.T, name string) string {
	t.Helper()
	resp, err := env.friends.AddFriend(context.Background(), connect.NewRequest(&api.AddFriendRequest{Name: name}))
	if err != nil {
		t.Fatalf("AddFriend(%s) failed: %v", name, err)
	}
	return resp.Msg.Friend.ID
}

func (env *testEnv) createExpense(t *testing.T, req *api.CreateExpenseRequest) *api.Expense {
	t.Helper()
	resp, err := env.expenses.CreateExpense(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func equalShares(ids ...string) []api.Share {
	shares := make([]api.Share, len(ids))
	for i, id := range ids {
		shares[i] = api.Share{UserID: id}
	}
	return shares
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected %v, got %v (%v)", want, got, err)
	}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
