// Package api is the single gateway client for the commerce backend. Every
// outgoing request carries the session bearer token when one is present in
// the request context. Calls are fire-once: no retry, no caching. Failures
// return an error the page handler converts into a notification.
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"maisonoutfits.dev/storefront/internal/store"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
	tracerName        = "maisonoutfits.dev/storefront/internal/api"
)

type ctxKey string

const ctxKeyToken ctxKey = "bearer_token"

// WithToken stores the session's bearer token in the context so the client
// attaches it to outgoing requests.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyToken, token)
}

func tokenFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyToken).(string)
	return v
}

// Error is a backend-reported failure. Message holds the server's detail
// text when the response carried one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Message extracts user-facing text from a gateway error, falling back to
// the supplied generic string.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound reports whether the error is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client issues typed calls against the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// NewClient constructs the gateway client. timeout <= 0 uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer(tracerName),
	}
}

// Products lists the catalog, optionally filtered by category.
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches one catalog item by id.
func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// AddCartItem registers a cart addition with the backend.
func (c *Client) AddCartItem(ctx context.Context, item store.CartItem) error {
	return c.do(ctx, http.MethodPost, "/cart", item, nil)
}

// AddWishlistItem registers a wishlist addition with the backend.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodPost, "/wishlist", store.WishlistItem{ProductID: productID}, nil)
}

// Orders lists the current user's orders, or all orders for admins.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder creates an order from the cart lines.
func (c *Client) CreateOrder(ctx context.Context, items []store.CartItem, total float64) (CreatedOrder, error) {
	body := struct {
		Items       []store.CartItem `json:"items"`
		TotalAmount float64          `json:"total_amount"`
	}{Items: items, TotalAmount: total}
	var out CreatedOrder
	if err := c.do(ctx, http.MethodPost, "/orders", body, &out); err != nil {
		return CreatedOrder{}, err
	}
	return out, nil
}

// CreateCheckout starts a provider-hosted payment session for the order.
func (c *Client) CreateCheckout(ctx context.Context, amount float64, hostURL, orderID string) (CheckoutSession, error) {
	body := struct {
		Amount   float64           `json:"amount"`
		Currency string            `json:"currency"`
		HostURL  string            `json:"host_url"`
		Metadata map[string]string `json:"metadata"`
	}{
		Amount:   amount,
		Currency: "usd",
		HostURL:  hostURL,
		Metadata: map[string]string{"order_id": orderID},
	}
	var out CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/payments/create-checkout", body, &out); err != nil {
		return CheckoutSession{}, err
	}
	return out, nil
}

// PaymentStatus polls the payment outcome for a checkout session.
func (c *Client) PaymentStatus(ctx context.Context, sessionID string) (PaymentStatus, error) {
	var out PaymentStatus
	if err := c.do(ctx, http.MethodGet, "/payments/status/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return PaymentStatus{}, err
	}
	return out, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (AuthSession, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}
	var out AuthSession
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return AuthSession{}, err
	}
	return out, nil
}

// Signup registers an account and returns its session.
func (c *Client) Signup(ctx context.Context, name, email, password string) (AuthSession, error) {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}
	var out AuthSession
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &out); err != nil {
		return AuthSession{}, err
	}
	return out, nil
}

// StyleRecommendation requests AI styling text for the given preferences.
func (c *Client) StyleRecommendation(ctx context.Context, prefs StylistPreferences) (Recommendation, error) {
	body := struct {
		Preferences StylistPreferences `json:"preferences"`
	}{Preferences: prefs}
	var out Recommendation
	if err := c.do(ctx, http.MethodPost, "/ai/style-recommendation", body, &out); err != nil {
		return Recommendation{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "gateway "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && method != http.MethodHead {
		req.Header.Set(idempotencyHeader, newIdempotencyKey())
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: drainDetail(resp.Body)}
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// drainDetail pulls the backend's error text out of a failure body. The
// backend reports validation failures as {"detail": "..."}.
func drainDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 1024))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(b, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(b))
}

func newIdempotencyKey() string {
	return "req_" + ulid.MustNew(ulid.Now(), rand.Reader).String()
}
