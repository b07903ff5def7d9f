// Package service implements the SplitEase Connect services on top of the record
// store and the balance engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectrpc.com/connect"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/middleware"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/money"
	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/internal/validation"
)

const dateLayout = "2006-01-02"

var (
	errUnknownPerson = errors.New("unknown person: add them as a friend first")
	errUnknownGroup  = errors.New("unknown group")
)

// Validator checks request messages against their tags.
type Validator interface {
	Struct(s any) error
}

// currentUser returns the caller's ID as set by the auth interceptor.
func currentUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// toConnectError maps domain errors onto Connect codes. Errors that already carry a
// code pass through unchanged.
func toConnectError(err error) error {
	var connectErr *connect.Error
	var validationErr *validation.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, validationErr)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, models.ErrMissingPayer),
		errors.Is(err, models.ErrMissingParticipants),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrSharesMismatch),
		errors.Is(err, models.ErrPercentMismatch),
		errors.Is(err, models.ErrUnknownSplitType),
		errors.Is(err, errUnknownPerson),
		errors.Is(err, errUnknownGroup):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// parseDate reads an optional "2006-01-02" date, defaulting to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid date %q: %w", s, err))
	}
	return t, nil
}

// people is the set of identifiers a user may reference: themselves and their friends.
type people struct {
	self    string
	friends map[string]models.Friend
}

func loadPeople(ctx context.Context, store storage.Store, userID string) (*people, error) {
	friends, err := store.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := &people{self: userID, friends: make(map[string]models.Friend, len(friends))}
	for _, f := range friends {
		p.friends[f.ID] = f
	}
	return p, nil
}

func (p *people) known(id string) bool {
	if id == p.self {
		return true
	}
	_, ok := p.friends[id]
	return ok
}

// requireKnown fails with errUnknownPerson for the first identifier that is neither the
// user nor one of their friends.
func (p *people) requireKnown(ids ...string) error {
	for _, id := range ids {
		if !p.known(id) {
			return fmt.Errorf("%w: %s", errUnknownPerson, id)
		}
	}
	return nil
}

// name returns a display name: "You" for the user, the friend's name otherwise.
func (p *people) name(id string) string {
	if id == p.self {
		return "You"
	}
	if f, ok := p.friends[id]; ok {
		return f.Name
	}
	return "Unknown"
}
