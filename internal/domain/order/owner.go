package order

import (
	"strconv"
	"strings"

	"order-saga/internal/pkg/errs"
)

var ErrMissingOwnerOrSession = errs.New("exactly one of user id or session id is required")

type OwnerKind int

const (
	ownerUnset OwnerKind = iota
	OwnerUser
	OwnerSession
)

// OwnerRef identifies who placed an order: an authenticated user or an anonymous cart session.
// The zero value is not a valid owner.
type OwnerRef struct {
	kind      OwnerKind
	userID    int64
	sessionID string
}

func NewUserOwner(userID int64) (OwnerRef, error) {
	if userID <= 0 {
		return OwnerRef{}, ErrMissingOwnerOrSession
	}
	return OwnerRef{kind: OwnerUser, userID: userID}, nil
}

func NewSessionOwner(sessionID string) (OwnerRef, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return OwnerRef{}, ErrMissingOwnerOrSession
	}
	return OwnerRef{kind: OwnerSession, sessionID: sessionID}, nil
}

// ResolveOwner accepts the two optional identities found on a request and
// fails unless exactly one of them is present.
func ResolveOwner(userID *int64, sessionID string) (OwnerRef, error) {
	hasSession := strings.TrimSpace(sessionID) != ""
	switch {
	case userID != nil && hasSession:
		return OwnerRef{}, ErrMissingOwnerOrSession
	case userID != nil:
		return NewUserOwner(*userID)
	case hasSession:
		return NewSessionOwner(sessionID)
	default:
		return OwnerRef{}, ErrMissingOwnerOrSession
	}
}

func (o OwnerRef) Kind() OwnerKind { return o.kind }
func (o OwnerRef) IsValid() bool   { return o.kind != ownerUnset }
func (o OwnerRef) IsUser() bool    { return o.kind == OwnerUser }
func (o OwnerRef) IsSession() bool { return o.kind == OwnerSession }

func (o OwnerRef) UserID() (int64, bool) {
	return o.userID, o.kind == OwnerUser
}

func (o OwnerRef) SessionID() (string, bool) {
	return o.sessionID, o.kind == OwnerSession
}

// UserIDPtr and SessionIDPtr give the nullable column form; at most one is non-nil.
func (o OwnerRef) UserIDPtr() *int64 {
	if o.kind != OwnerUser {
		return nil
	}
	v := o.userID
	return &v
}

func (o OwnerRef) SessionIDPtr() *string {
	if o.kind != OwnerSession {
		return nil
	}
	v := o.sessionID
	return &v
}

func (o OwnerRef) String() string {
	switch o.kind {
	case OwnerUser:
		return "user:" + strconv.FormatInt(o.userID, 10)
	case OwnerSession:
		return "session:" + o.sessionID
	default:
		return "unset"
	}
}
