package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/pkg/api"
)

// FriendServiceName is the fully-qualified name of the FriendService service.
const FriendServiceName = "splitease.v1.FriendService"

const (
	// FriendServiceAddFriendProcedure is the path of the FriendService.AddFriend RPC.
	FriendServiceAddFriendProcedure = "/splitease.v1.FriendService/AddFriend"
	// FriendServiceGetFriendProcedure is the path of the FriendService.GetFriend RPC.
	FriendServiceGetFriendProcedure = "/splitease.v1.FriendService/GetFriend"
	// FriendServiceListFriendsProcedure is the path of the FriendService.ListFriends RPC.
	FriendServiceListFriendsProcedure = "/splitease.v1.FriendService/ListFriends"
	// FriendServiceDeleteFriendProcedure is the path of the FriendService.DeleteFriend RPC.
	FriendServiceDeleteFriendProcedure = "/splitease.v1.FriendService/DeleteFriend"
)

// FriendServiceHandler is the server side of FriendService.
type FriendServiceHandler interface {
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	GetFriend(context.Context, *connect.Request[api.GetFriendRequest]) (*connect.Response[api.GetFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	DeleteFriend(context.Context, *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error)
}

// NewFriendServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewFriendServiceHandler(svc FriendServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	routes := map[string]http.Handler{
		FriendServiceAddFriendProcedure:    connect.NewUnaryHandler(FriendServiceAddFriendProcedure, svc.AddFriend, opt),
		FriendServiceGetFriendProcedure:    connect.NewUnaryHandler(FriendServiceGetFriendProcedure, svc.GetFriend, opt),
		FriendServiceListFriendsProcedure:  connect.NewUnaryHandler(FriendServiceListFriendsProcedure, svc.ListFriends, opt),
		FriendServiceDeleteFriendProcedure: connect.NewUnaryHandler(FriendServiceDeleteFriendProcedure, svc.DeleteFriend, opt),
	}
	return "/" + FriendServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// FriendServiceClient is the client side of FriendService.
type FriendServiceClient interface {
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error)
	GetFriend(context.Context, *connect.Request[api.GetFriendRequest]) (*connect.Response[api.GetFriendResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	DeleteFriend(context.Context, *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error)
}

// NewFriendServiceClient returns a client for the service at baseURL, e.g. http://localhost:8080.
func NewFriendServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FriendServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &friendServiceClient{
		addFriend:    connect.NewClient[api.AddFriendRequest, api.AddFriendResponse](httpClient, baseURL+FriendServiceAddFriendProcedure, opt),
		getFriend:    connect.NewClient[api.GetFriendRequest, api.GetFriendResponse](httpClient, baseURL+FriendServiceGetFriendProcedure, opt),
		listFriends:  connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+FriendServiceListFriendsProcedure, opt),
		deleteFriend: connect.NewClient[api.DeleteFriendRequest, api.DeleteFriendResponse](httpClient, baseURL+FriendServiceDeleteFriendProcedure, opt),
	}
}

type friendServiceClient struct {
	addFriend    *connect.Client[api.AddFriendRequest, api.AddFriendResponse]
	getFriend    *connect.Client[api.GetFriendRequest, api.GetFriendResponse]
	listFriends  *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
	deleteFriend *connect.Client[api.DeleteFriendRequest, api.DeleteFriendResponse]
}

func (c *friendServiceClient) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *friendServiceClient) GetFriend(ctx context.Context, req *connect.Request[api.GetFriendRequest]) (*connect.Response[api.GetFriendResponse], error) {
	return c.getFriend.CallUnary(ctx, req)
}

func (c *friendServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

func (c *friendServiceClient) DeleteFriend(ctx context.Context, req *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error) {
	return c.deleteFriend.CallUnary(ctx, req)
}
