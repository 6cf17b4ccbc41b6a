package nav

import "strings"

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/products/men"
	Label string
	// AdminOnly entries render only for admin users. This is a UI
	// convenience, not authorization; the backend enforces the real check.
	AdminOnly bool
	// AuthOnly entries render only when a session exists.
	AuthOnly bool
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/products/men", Label: "Men"},
	{Path: "/products/women", Label: "Women"},
	{Path: "/ai-stylist", Label: "AI Stylist"},
	{Path: "/wishlist", Label: "Wishlist", AuthOnly: true},
	{Path: "/cart", Label: "Cart"},
	{Path: "/profile", Label: "Profile", AuthOnly: true},
	{Path: "/admin", Label: "Admin", AdminOnly: true},
}

// Build renders navigation items with active state for the current path,
// filtered by session presence and role.
func Build(currentPath string, authed, admin bool) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		if it.AdminOnly && !admin {
			continue
		}
		if it.AuthOnly && !authed {
			continue
		}
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}
