//go:build unit

package cartclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-saga/internal/domain/order"
	"order-saga/internal/infra/cartclient"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *cartclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return cartclient.New(config.CartConfig{BaseURL: srv.URL + "/", Timeout: 0})
}

func TestGet_UserCart(t *testing.T) {
	var gotUser, gotPath string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get("X-User-Id")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"productId":3,"name":"Lamp","quantity":2,"unitPrice":12.5,"availableQuantity":9}]}`))
	})
	owner, _ := order.NewUserOwner(17)

	cart, err := c.Get(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, "17", gotUser)
	assert.Equal(t, "/api/carts", gotPath)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(3), cart.Lines[0].ProductID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(cart.Lines[0].UnitPrice))
	assert.Equal(t, int32(9), cart.Lines[0].AvailableQuantity)
}

func TestGet_SessionCartUsesCookie(t *testing.T) {
	var gotSession, gotPath string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("sessionId"); err == nil {
			gotSession = ck.Value
		}
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	owner, _ := order.NewSessionOwner("s-1")

	cart, err := c.Get(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, "s-1", gotSession)
	assert.Equal(t, "/api/carts/anonymous", gotPath)
	assert.True(t, cart.IsEmpty())
}

func TestGet_NotFoundIsEmptyCart(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	owner, _ := order.NewUserOwner(1)

	cart, err := c.Get(context.Background(), owner)

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestGet_ServerErrorIsMarked(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	owner, _ := order.NewUserOwner(1)

	_, err := c.Get(context.Background(), owner)

	require.Error(t, err)
	assert.True(t, errs.Is(err, cartclient.ErrCartService))
	assert.Contains(t, err.Error(), "502")
}

func TestClear(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent, http.StatusNotFound} {
		var method string
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			w.WriteHeader(status)
		})
		owner, _ := order.NewUserOwner(1)

		require.NoError(t, c.Clear(context.Background(), owner), "status %d", status)
		assert.Equal(t, http.MethodDelete, method)
	}

	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	owner, _ := order.NewUserOwner(1)
	assert.True(t, errs.Is(c.Clear(context.Background(), owner), cartclient.ErrCartService))
}

func TestGet_InvalidOwner(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := c.Get(context.Background(), order.OwnerRef{})

	assert.ErrorIs(t, err, order.ErrMissingOwnerOrSession)
}
