package cartclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"order-saga/internal/domain/order"
	"order-saga/internal/pkg/config"
	"order-saga/internal/pkg/cookie"
	"order-saga/internal/pkg/errs"
	"order-saga/internal/usecase/commands"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	userIDHeader  = "X-User-Id"
	cartsPath     = "/api/carts"
	anonymousPath = "/api/carts/anonymous"
)

var ErrCartService = errs.New("cart service request failed")

type cartResponse struct {
	Items []cartItem `json:"items"`
}

type cartItem struct {
	ProductID         int64           `json:"productId"`
	Name              string          `json:"name"`
	Quantity          int32           `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	AvailableQuantity int32           `json:"availableQuantity"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client whose transport records a client span and forwards the trace context.
func New(cfg config.CartConfig) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) Get(ctx context.Context, owner order.OwnerRef) (*commands.Cart, error) {
	resp, err := c.do(ctx, http.MethodGet, owner)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return &commands.Cart{}, nil
	default:
		return nil, unexpectedStatus(resp)
	}

	var body cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode cart response"), ErrCartService)
	}

	cart := &commands.Cart{Lines: make([]commands.CartLine, 0, len(body.Items))}
	for _, it := range body.Items {
		cart.Lines = append(cart.Lines, commands.CartLine(it))
	}
	return cart, nil
}

func (c *Client) Clear(ctx context.Context, owner order.OwnerRef) error {
	resp, err := c.do(ctx, http.MethodDelete, owner)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return unexpectedStatus(resp)
	}
}

func (c *Client) do(ctx context.Context, method string, owner order.OwnerRef) (*http.Response, error) {
	path := cartsPath
	if owner.IsSession() {
		path = anonymousPath
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "build cart request"), ErrCartService)
	}
	req.Header.Set("Accept", "application/json")

	if uid, ok := owner.UserID(); ok {
		req.Header.Set(userIDHeader, strconv.FormatInt(uid, 10))
	} else if sid, ok := owner.SessionID(); ok {
		req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: sid})
	} else {
		return nil, order.ErrMissingOwnerOrSession
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "%s %s", method, path), ErrCartService)
	}
	return resp, nil
}

func unexpectedStatus(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return errs.Mark(
		errs.Newf("%s %s: unexpected status %d: %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, strings.TrimSpace(string(snippet))),
		ErrCartService,
	)
}
