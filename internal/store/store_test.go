package store

import (
	"reflect"
	"testing"
)

func item(id, fabric string, qty int, price float64) CartItem {
	return CartItem{
		ProductID:     id,
		Customization: Customization{Size: "M", Fit: "regular", Fabric: fabric},
		Quantity:      qty,
		Price:         price,
	}
}

func TestNewStateIsAnonymous(t *testing.T) {
	st := New()
	if st.Authenticated() {
		t.Fatal("fresh state should not be authenticated")
	}
	if st.ID == "" {
		t.Fatal("fresh state should carry an id")
	}
	if st.CSRFToken == "" {
		t.Fatal("fresh state should carry a CSRF token")
	}
	if !st.Dirty() {
		t.Fatal("fresh state should be dirty so it is persisted")
	}
}

func TestCartMutations(t *testing.T) {
	st := New()

	st.AddToCart(item("p1", "Silk", 1, 150))
	st.AddToCart(item("p1", "Cotton", 2, 100))
	st.AddToCart(item("p2", "Satin", 1, 150))

	if len(st.Cart) != 3 {
		t.Fatalf("cart has %d lines, want 3", len(st.Cart))
	}
	// Duplicate product ids stay as distinct lines in insertion order.
	if st.Cart[0].ProductID != "p1" || st.Cart[1].ProductID != "p1" || st.Cart[2].ProductID != "p2" {
		t.Fatalf("cart order wrong: %+v", st.Cart)
	}

	if got := st.CartTotal(); got != 150+200+150 {
		t.Fatalf("CartTotal = %v, want 500", got)
	}

	st.RemoveFromCart(1)
	if len(st.Cart) != 2 {
		t.Fatalf("cart has %d lines after remove, want 2", len(st.Cart))
	}
	if st.Cart[0].ProductID != "p1" || st.Cart[1].ProductID != "p2" {
		t.Fatalf("remaining lines wrong: %+v", st.Cart)
	}

	// Out-of-range removals leave the cart untouched.
	before := append([]CartItem(nil), st.Cart...)
	st.RemoveFromCart(-1)
	st.RemoveFromCart(5)
	if !reflect.DeepEqual(st.Cart, before) {
		t.Fatalf("out-of-range remove mutated cart: %+v", st.Cart)
	}

	st.ClearCart()
	if len(st.Cart) != 0 {
		t.Fatalf("cart not cleared: %+v", st.Cart)
	}
	if st.CartTotal() != 0 {
		t.Fatalf("empty cart total = %v", st.CartTotal())
	}
}

func TestWishlistRemovePreservesOrder(t *testing.T) {
	st := New()
	st.AddToWishlist(WishlistItem{ProductID: "a"})
	st.AddToWishlist(WishlistItem{ProductID: "b"})
	st.AddToWishlist(WishlistItem{ProductID: "c"})

	st.RemoveFromWishlist("b")
	want := []WishlistItem{{ProductID: "a"}, {ProductID: "c"}}
	if !reflect.DeepEqual(st.Wishlist, want) {
		t.Fatalf("wishlist = %+v, want %+v", st.Wishlist, want)
	}

	// Unknown ids are a no-op.
	st.RemoveFromWishlist("zzz")
	if !reflect.DeepEqual(st.Wishlist, want) {
		t.Fatalf("no-op remove mutated wishlist: %+v", st.Wishlist)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	st := New()
	st.SetUser(&UserSummary{ID: "u1", Name: "Ada", Role: "admin"})
	st.SetToken("tok")
	st.AddToCart(item("p1", "Silk", 1, 150))
	st.AddToWishlist(WishlistItem{ProductID: "p2"})

	if !st.Authenticated() || !st.IsAdmin() {
		t.Fatal("setup: expected authenticated admin")
	}

	st.Logout()
	if st.Authenticated() || st.User != nil || st.Token != "" {
		t.Fatal("logout left identity behind")
	}
	if len(st.Cart) != 0 || len(st.Wishlist) != 0 {
		t.Fatal("logout left cart or wishlist behind")
	}
}

func TestFlashesAreOneShot(t *testing.T) {
	st := New()
	st.AddFlash("success", "Added to cart!")
	st.AddFlash("error", "Payment failed. Please try again.")

	got := st.TakeFlashes()
	if len(got) != 2 || got[0].Text != "Added to cart!" || got[1].Tone != "error" {
		t.Fatalf("TakeFlashes = %+v", got)
	}
	if again := st.TakeFlashes(); again != nil {
		t.Fatalf("second TakeFlashes = %+v, want nil", again)
	}
}

func TestRegenerateID(t *testing.T) {
	st := New()
	oldID, oldCSRF := st.ID, st.CSRFToken
	st.RegenerateID()
	if st.ID == oldID {
		t.Fatal("RegenerateID kept the old id")
	}
	if st.CSRFToken == oldCSRF {
		t.Fatal("RegenerateID kept the old CSRF token")
	}
}
