package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/money"
	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/internal/watch"
	"github.com/splitease/splitease/pkg/api"
	"github.com/splitease/splitease/pkg/api/apiconnect"
)

var _ apiconnect.BalanceServiceHandler = (*BalanceService)(nil)

// SettlementGauge receives the outcome of every background recomputation.
type SettlementGauge interface {
	SetOpenSettlements(userID string, n int)
	ForgetUser(userID string)
}

// BalanceService answers balance queries. Balances are always derived from the
// current records; nothing is cached between calls.
type BalanceService struct {
	store    storage.Store
	engine   *calculator.Engine
	validate Validator

	gauge    SettlementGauge
	debounce time.Duration
	idle     time.Duration

	mu       sync.Mutex
	group    *errgroup.Group
	groupCtx context.Context
	watching map[string]*watcher
}

// watcher is one user's background recomputation loop.
type watcher struct {
	ctx   context.Context
	timer *time.Timer
}

// NewBalanceService creates a BalanceService. gauge may be nil. A watcher stops after idle
// passes without a balance query from its user; zero keeps watchers until shutdown.
func NewBalanceService(store storage.Store, engine *calculator.Engine, validate Validator, gauge SettlementGauge, debounce, idle time.Duration) *BalanceService {
	return &BalanceService{
		store:    store,
		engine:   engine,
		validate: validate,
		gauge:    gauge,
		debounce: debounce,
		idle:     idle,
		watching: make(map[string]*watcher),
	}
}

// snapshot loads the caller's records in one consistent read.
func (s *BalanceService) snapshot(ctx context.Context, userID string) (*calculator.Snapshot, *people, error) {
	records, err := s.store.LoadRecords(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	snap := &calculator.Snapshot{
		CurrentUserID: userID,
		Expenses:      records.Expenses,
		Friends:       records.Friends,
		Groups:        records.Groups,
	}
	who := &people{self: userID, friends: make(map[string]models.Friend, len(records.Friends))}
	for _, f := range records.Friends {
		who.friends[f.ID] = f
	}
	s.track(userID)
	return snap, who, nil
}

// CalculateBalances returns every outstanding settlement among the caller and their friends.
func (s *BalanceService) CalculateBalances(ctx context.Context, req *connect.Request[api.CalculateBalancesRequest]) (*connect.Response[api.CalculateBalancesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CalculateBalances request received", "user_id", userID)

	snap, who, err := s.snapshot(ctx, userID)
	if err != nil {
		slog.Error("CalculateBalances failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	settlements := s.engine.CalculateBalances(snap)

	slog.Info("CalculateBalances successful", "user_id", userID, "settlements", len(settlements))
	return connect.NewResponse(&api.CalculateBalancesResponse{
		Settlements: settlementsToAPI(settlements, who.name),
	}), nil
}

// GetTotals returns what the caller is owed, what they owe, and the difference.
func (s *BalanceService) GetTotals(ctx context.Context, req *connect.Request[api.GetTotalsRequest]) (*connect.Response[api.GetTotalsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetTotals request received", "user_id", userID)

	snap, _, err := s.snapshot(ctx, userID)
	if err != nil {
		slog.Error("GetTotals failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	sum := s.engine.Summary(snap)

	return connect.NewResponse(&api.GetTotalsResponse{
		TotalOwedToUser: money.Format(sum.TotalOwedToUser),
		TotalUserOwes:   money.Format(sum.TotalUserOwes),
		NetBalance:      money.Format(sum.NetBalance),
	}), nil
}

// GetFriendBalance returns the signed balance with one friend, or with every friend
// the caller has an open balance with when no friend is named.
func (s *BalanceService) GetFriendBalance(ctx context.Context, req *connect.Request[api.GetFriendBalanceRequest]) (*connect.Response[api.GetFriendBalanceResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetFriendBalance request received", "user_id", userID, "friend_id", req.Msg.FriendID)

	snap, who, err := s.snapshot(ctx, userID)
	if err != nil {
		slog.Error("GetFriendBalance failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	settlements := s.engine.CalculateBalances(snap)

	resp := &api.GetFriendBalanceResponse{}
	if req.Msg.FriendID != "" {
		if snap.FriendByID(req.Msg.FriendID) == nil {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("friend not found: "+req.Msg.FriendID))
		}
		resp.Balances = append(resp.Balances, &api.FriendBalance{
			FriendID: req.Msg.FriendID,
			Name:     who.name(req.Msg.FriendID),
			Amount:   money.Format(calculator.BalanceWith(settlements, userID, req.Msg.FriendID)),
		})
		resp.Settlements = settlementsToAPI(calculator.BalancesInvolving(settlements, req.Msg.FriendID), who.name)
	} else {
		for _, c := range calculator.CounterpartyBalances(settlements, userID) {
			resp.Balances = append(resp.Balances, &api.FriendBalance{
				FriendID: c.ID,
				Name:     who.name(c.ID),
				Amount:   money.Format(c.Amount),
			})
		}
	}

	return connect.NewResponse(resp), nil
}

// GetGroupBalances returns the settlements between members of a group.
func (s *BalanceService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroupBalances request received", "user_id", userID, "group_id", req.Msg.GroupID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	snap, who, err := s.snapshot(ctx, userID)
	if err != nil {
		slog.Error("GetGroupBalances failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	settlements, ok := s.engine.GroupBalances(snap, req.Msg.GroupID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("group not found: "+req.Msg.GroupID))
	}

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Settlements: settlementsToAPI(settlements, who.name),
	}), nil
}

// SuggestPayment pre-fills the payment that would settle up with a friend.
func (s *BalanceService) SuggestPayment(ctx context.Context, req *connect.Request[api.SuggestPaymentRequest]) (*connect.Response[api.SuggestPaymentResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SuggestPayment request received", "user_id", userID, "friend_id", req.Msg.FriendID)

	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	snap, _, err := s.snapshot(ctx, userID)
	if err != nil {
		slog.Error("SuggestPayment failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	if snap.FriendByID(req.Msg.FriendID) == nil {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("friend not found: "+req.Msg.FriendID))
	}

	payment, ok := calculator.SuggestPayment(s.engine.CalculateBalances(snap), userID, req.Msg.FriendID)
	if !ok {
		return connect.NewResponse(&api.SuggestPaymentResponse{Settled: true}), nil
	}
	return connect.NewResponse(&api.SuggestPaymentResponse{
		Payment: &api.RecordPaymentRequest{
			From:   payment.From,
			To:     payment.To,
			Amount: money.Format(payment.Amount),
			Date:   time.Now().UTC().Format(dateLayout),
		},
	}), nil
}

// Run supervises background recomputation until ctx is done. Users are picked up when
// they query their balances and dropped again once they go idle.
func (s *BalanceService) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	s.mu.Lock()
	s.group, s.groupCtx = g, gctx
	s.mu.Unlock()

	<-gctx.Done()

	s.mu.Lock()
	s.group = nil
	s.mu.Unlock()

	return g.Wait()
}

// track starts a watcher for userID once Run is active, or extends the idle deadline of
// the one already running.
func (s *BalanceService) track(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group == nil {
		return
	}
	if w, ok := s.watching[userID]; ok && w.ctx.Err() == nil {
		if w.timer != nil {
			w.timer.Reset(s.idle)
		}
		return
	}

	ctx, cancel := context.WithCancel(s.groupCtx)
	w := &watcher{ctx: ctx}
	if s.idle > 0 {
		w.timer = time.AfterFunc(s.idle, cancel)
	}
	s.watching[userID] = w
	s.group.Go(func() error {
		defer func() {
			cancel()
			if w.timer != nil {
				w.timer.Stop()
			}
			s.mu.Lock()
			if s.watching[userID] == w {
				delete(s.watching, userID)
			}
			s.mu.Unlock()
		}()
		return s.Watch(ctx, userID)
	})
}


// Watch recomputes userID's balances after every burst of record changes and reports
// the settlement count to the gauge. It returns nil when ctx is done.
func (s *BalanceService) Watch(ctx context.Context, userID string) error {
	changes, cancel := s.store.Subscribe(userID)
	defer cancel()
	if s.gauge != nil {
		defer s.gauge.ForgetUser(userID)
	}

	recompute := func() {
		records, err := s.store.LoadRecords(ctx, userID)
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("Balance recomputation failed", "user_id", userID, "error", err)
			}
			return
		}
		settlements := s.engine.CalculateBalances(&calculator.Snapshot{
			CurrentUserID: userID,
			Expenses:      records.Expenses,
			Friends:       records.Friends,
			Groups:        records.Groups,
		})
		slog.Debug("Balances recomputed", "user_id", userID, "settlements", len(settlements))
		if s.gauge != nil {
			s.gauge.SetOpenSettlements(userID, len(settlements))
		}
	}

	recompute()
	err := watch.Debounce(ctx, changes, s.debounce, recompute)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
