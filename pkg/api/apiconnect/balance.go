package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService service.
const BalanceServiceName = "splitease.v1.BalanceService"

const (
	// BalanceServiceCalculateBalancesProcedure is the path of the BalanceService.CalculateBalances RPC.
	BalanceServiceCalculateBalancesProcedure = "/splitease.v1.BalanceService/CalculateBalances"
	// BalanceServiceGetTotalsProcedure is the path of the BalanceService.GetTotals RPC.
	BalanceServiceGetTotalsProcedure = "/splitease.v1.BalanceService/GetTotals"
	// BalanceServiceGetFriendBalanceProcedure is the path of the BalanceService.GetFriendBalance RPC.
	BalanceServiceGetFriendBalanceProcedure = "/splitease.v1.BalanceService/GetFriendBalance"
	// BalanceServiceGetGroupBalancesProcedure is the path of the BalanceService.GetGroupBalances RPC.
	BalanceServiceGetGroupBalancesProcedure = "/splitease.v1.BalanceService/GetGroupBalances"
	// BalanceServiceSuggestPaymentProcedure is the path of the BalanceService.SuggestPayment RPC.
	BalanceServiceSuggestPaymentProcedure = "/splitease.v1.BalanceService/SuggestPayment"
)

// BalanceServiceHandler is the server side of BalanceService.
type BalanceServiceHandler interface {
	CalculateBalances(context.Context, *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error)
	GetTotals(context.Context, *connect.Request[api.GetTotalsRequest]) (*connect.Response[api.GetTotalsResponse], error)
	GetFriendBalance(context.Context, *connect.Request[api.GetFriendBalanceRequest]) (*connect.Response[api.GetFriendBalanceResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	SuggestPayment(context.Context, *connect.Request[api.SuggestPaymentRequest]) (*connect.Response[api.SuggestPaymentResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	routes := map[string]http.Handler{
		BalanceServiceCalculateBalancesProcedure: connect.NewUnaryHandler(BalanceServiceCalculateBalancesProcedure, svc.CalculateBalances, opt),
		BalanceServiceGetTotalsProcedure:         connect.NewUnaryHandler(BalanceServiceGetTotalsProcedure, svc.GetTotals, opt),
		BalanceServiceGetFriendBalanceProcedure:  connect.NewUnaryHandler(BalanceServiceGetFriendBalanceProcedure, svc.GetFriendBalance, opt),
		BalanceServiceGetGroupBalancesProcedure:  connect.NewUnaryHandler(BalanceServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opt),
		BalanceServiceSuggestPaymentProcedure:    connect.NewUnaryHandler(BalanceServiceSuggestPaymentProcedure, svc.SuggestPayment, opt),
	}
	return "/" + BalanceServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// BalanceServiceClient is the client side of BalanceService.
type BalanceServiceClient interface {
	CalculateBalances(context.Context, *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error)
	GetTotals(context.Context, *connect.Request[api.GetTotalsRequest]) (*connect.Response[api.GetTotalsResponse], error)
	GetFriendBalance(context.Context, *connect.Request[api.GetFriendBalanceRequest]) (*connect.Response[api.GetFriendBalanceResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	SuggestPayment(context.Context, *connect.Request[api.SuggestPaymentRequest]) (*connect.Response[api.SuggestPaymentResponse], error)
}

// NewBalanceServiceClient returns a client for the service at baseURL, e.g. http://localhost:8080.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &balanceServiceClient{
		calculateBalances: connect.NewClient[api.CalculateBalancesRequest, api.CalculateBalancesResponse](httpClient, baseURL+BalanceServiceCalculateBalancesProcedure, opt),
		getTotals:         connect.NewClient[api.GetTotalsRequest, api.GetTotalsResponse](httpClient, baseURL+BalanceServiceGetTotalsProcedure, opt),
		getFriendBalance:  connect.NewClient[api.GetFriendBalanceRequest, api.GetFriendBalanceResponse](httpClient, baseURL+BalanceServiceGetFriendBalanceProcedure, opt),
		getGroupBalances:  connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+BalanceServiceGetGroupBalancesProcedure, opt),
		suggestPayment:    connect.NewClient[api.SuggestPaymentRequest, api.SuggestPaymentResponse](httpClient, baseURL+BalanceServiceSuggestPaymentProcedure, opt),
	}
}

type balanceServiceClient struct {
	calculateBalances *connect.Client[api.CalculateBalancesRequest, api.CalculateBalancesResponse]
	getTotals         *connect.Client[api.GetTotalsRequest, api.GetTotalsResponse]
	getFriendBalance  *connect.Client[api.GetFriendBalanceRequest, api.GetFriendBalanceResponse]
	getGroupBalances  *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	suggestPayment    *connect.Client[api.SuggestPaymentRequest, api.SuggestPaymentResponse]
}

func (c *balanceServiceClient) CalculateBalances(ctx context.Context, req *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error) {
	return c.calculateBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetTotals(ctx context.Context, req *connect.Request[api.GetTotalsRequest]) (*connect.Response[api.GetTotalsResponse], error) {
	return c.getTotals.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetFriendBalance(ctx context.Context, req *connect.Request[api.GetFriendBalanceRequest]) (*connect.Response[api.GetFriendBalanceResponse], error) {
	return c.getFriendBalance.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) SuggestPayment(ctx context.Context, req *connect.Request[api.SuggestPaymentRequest]) (*connect.Response[api.SuggestPaymentResponse], error) {
	return c.suggestPayment.CallUnary(ctx, req)
}
