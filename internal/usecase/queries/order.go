package queries

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order.go -package=queriesmock

import (
	"context"
	"time"

	"order-saga/internal/domain/order"
	"order-saga/internal/infra"
	"order-saga/internal/pkg/errs"
)

var ErrInvalidCursor = errs.New("invalid cursor")

type OrderReadStore interface {
	FindByID(ctx context.Context, id int64) (*OrderView, error)
	FindByOwnerFirstPage(ctx context.Context, owner order.OwnerRef, limit int32) ([]*OrderView, error)
	FindByOwnerKeyset(ctx context.Context, owner order.OwnerRef, lastCreatedAt time.Time, lastID int64, limit int32) ([]*OrderView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, owner order.OwnerRef, id int64) (*OrderView, error)
	ListByOwner(ctx context.Context, owner order.OwnerRef, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
}

type orderQueriesImpl struct {
	repo OrderReadStore
}

func NewOrderQueries(repo OrderReadStore) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

// GetByID hides orders of other owners behind ErrOrderNotFound.
func (q *orderQueriesImpl) GetByID(ctx context.Context, owner order.OwnerRef, id int64) (*OrderView, error) {
	if !owner.IsValid() {
		return nil, order.ErrMissingOwnerOrSession
	}
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	if !ownedBy(v, owner) {
		return nil, order.ErrOrderNotFound
	}
	return v, nil
}

func (q *orderQueriesImpl) ListByOwner(ctx context.Context, owner order.OwnerRef, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	if !owner.IsValid() {
		return nil, nil, order.ErrMissingOwnerOrSession
	}
	limit = ValidateLimit(limit)

	var rows []*OrderView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByOwnerFirstPage(ctx, owner, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByOwnerKeyset(ctx, owner, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func ownedBy(v *OrderView, owner order.OwnerRef) bool {
	if uid, ok := owner.UserID(); ok {
		return v.UserID != nil && *v.UserID == uid
	}
	if sid, ok := owner.SessionID(); ok {
		return v.SessionID != nil && *v.SessionID == sid
	}
	return false
}
