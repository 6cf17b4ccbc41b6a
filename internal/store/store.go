package store

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// UserSummary is the authenticated identity returned by the backend on
// login/signup. Role "admin" only unlocks the admin navigation entry; it is
// not an authorization boundary; the backend enforces the real one.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Customization is a garment's chosen option combination. The fabric choice
// determines the line-item surcharge.
type Customization struct {
	Size   string `json:"size"`
	Fit    string `json:"fit"`
	Color  string `json:"color"`
	Fabric string `json:"fabric"`
	Sleeve string `json:"sleeve"`
}

// CartItem is one cart line. Duplicates by product id are allowed; distinct
// customizations are distinct lines. Insertion order is display and
// checkout order.
type CartItem struct {
	ProductID     string        `json:"product_id"`
	Customization Customization `json:"customization"`
	Quantity      int           `json:"quantity"`
	Price         float64       `json:"price"`
}

// WishlistItem is set-like by product id.
type WishlistItem struct {
	ProductID string `json:"product_id"`
}

// Flash is a one-shot notification rendered by the layout and then dropped.
type Flash struct {
	Tone string `json:"tone"`
	Text string `json:"text"`
}

// State is the whole persisted client store: session identity plus the two
// user-curated lists. It is a client-side cache of state the backend also
// holds; the two are never reconciled after a successful mutation.
//
// All mutators are synchronous and total. They touch only the in-memory
// state and flag it dirty; the durable mirror is written by the session
// middleware through the codec at the end of the request.
type State struct {
	ID        string         `json:"id"`
	User      *UserSummary   `json:"user,omitempty"`
	Token     string         `json:"token,omitempty"`
	Cart      []CartItem     `json:"cart"`
	Wishlist  []WishlistItem `json:"wishlist"`
	Flashes   []Flash        `json:"flash,omitempty"`
	CSRFToken string         `json:"csrf,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	dirty bool
}

// New returns a fresh anonymous state.
func New() *State {
	now := time.Now().UTC()
	return &State{
		ID:        uuid.NewString(),
		CSRFToken: NewCSRFToken(),
		CreatedAt: now,
		UpdatedAt: now,
		dirty:     true,
	}
}

// MarkDirty flags the state for persisting at the end of the request.
func (s *State) MarkDirty() {
	s.dirty = true
	s.UpdatedAt = time.Now().UTC()
}

// Dirty reports whether the state has unpersisted mutations.
func (s *State) Dirty() bool { return s.dirty }

// Authenticated reports whether a session exists.
func (s *State) Authenticated() bool { return s.User != nil && s.Token != "" }

// IsAdmin reports whether the admin navigation entry should show.
func (s *State) IsAdmin() bool { return s.User != nil && s.User.Role == "admin" }

// SetUser stores the user summary.
func (s *State) SetUser(u *UserSummary) {
	s.User = u
	s.MarkDirty()
}

// SetToken stores the bearer token. An empty token clears the durable entry.
func (s *State) SetToken(token string) {
	s.Token = token
	s.MarkDirty()
}

// Logout clears user, token, cart and wishlist together.
func (s *State) Logout() {
	s.User = nil
	s.Token = ""
	s.Cart = nil
	s.Wishlist = nil
	s.MarkDirty()
}

// AddToCart appends a line item.
func (s *State) AddToCart(item CartItem) {
	s.Cart = append(s.Cart, item)
	s.MarkDirty()
}

// RemoveFromCart deletes the line at index. Out-of-range indexes are a no-op.
func (s *State) RemoveFromCart(index int) {
	if index < 0 || index >= len(s.Cart) {
		return
	}
	s.Cart = append(s.Cart[:index], s.Cart[index+1:]...)
	s.MarkDirty()
}

// ClearCart empties the cart.
func (s *State) ClearCart() {
	s.Cart = nil
	s.MarkDirty()
}

// AddToWishlist appends an entry.
func (s *State) AddToWishlist(item WishlistItem) {
	s.Wishlist = append(s.Wishlist, item)
	s.MarkDirty()
}

// RemoveFromWishlist removes every entry with the given product id,
// preserving the relative order of the rest. Unknown ids are a no-op.
func (s *State) RemoveFromWishlist(productID string) {
	kept := s.Wishlist[:0]
	removed := false
	for _, it := range s.Wishlist {
		if it.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return
	}
	s.Wishlist = kept
	s.MarkDirty()
}

// CartTotal sums price × quantity over the cart in order.
func (s *State) CartTotal() float64 {
	var total float64
	for _, it := range s.Cart {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// AddFlash queues a one-shot notification.
func (s *State) AddFlash(tone, text string) {
	s.Flashes = append(s.Flashes, Flash{Tone: tone, Text: text})
	s.MarkDirty()
}

// TakeFlashes drains queued notifications for rendering.
func (s *State) TakeFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	s.MarkDirty()
	return out
}

// NewCSRFToken returns a fresh random token.
func NewCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RegenerateID assigns a new state ID and CSRF token to prevent fixation
// after authentication.
func (s *State) RegenerateID() {
	s.ID = uuid.NewString()
	s.CSRFToken = NewCSRFToken()
	s.MarkDirty()
}
