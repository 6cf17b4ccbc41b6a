package api

import (
	"time"

	"maisonoutfits.dev/storefront/internal/store"
)

// Product mirrors the backend catalog representation.
type Product struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	Category             string               `json:"category"`
	Subcategory          string               `json:"subcategory"`
	Description          string               `json:"description"`
	BasePrice            float64              `json:"base_price"`
	Images               []string             `json:"images"`
	CustomizationOptions CustomizationOptions `json:"customization_options"`
	CreatedAt            time.Time            `json:"created_at"`
}

// CustomizationOptions lists the selectable values per customization axis.
type CustomizationOptions struct {
	Sizes   []string `json:"sizes"`
	Fits    []string `json:"fits"`
	Colors  []string `json:"colors"`
	Fabrics []string `json:"fabrics"`
	Sleeves []string `json:"sleeves"`
}

// Order mirrors the backend order representation. The same shape arrives
// over the push channel.
type Order struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	Items         []store.CartItem `json:"items"`
	TotalAmount   float64          `json:"total_amount"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CreatedOrder is the POST /orders response.
type CreatedOrder struct {
	ID string `json:"id"`
}

// AuthSession is the login/signup response: the bearer token and the user
// summary that are stored together in the client store.
type AuthSession struct {
	Token string            `json:"token"`
	User  store.UserSummary `json:"user"`
}

// CheckoutSession is the payment-session creation response. URL is the
// redirect target of the provider-hosted flow.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PaymentStatus is the polled payment outcome. PaymentStatus "paid" means
// completion; Status "expired" means the session lapsed.
type PaymentStatus struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// StylistPreferences carries the AI stylist form selections.
type StylistPreferences struct {
	Gender   string `json:"gender"`
	Occasion string `json:"occasion"`
	Color    string `json:"color"`
	Fit      string `json:"fit"`
}

// Recommendation is the AI stylist response text (Markdown).
type Recommendation struct {
	Recommendation string `json:"recommendation"`
}
