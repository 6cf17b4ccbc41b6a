package main

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"maisonoutfits.dev/storefront/internal/api"
	"maisonoutfits.dev/storefront/internal/push"
)

// AdminStats are the dashboard cards, recomputed from the full (fetched +
// pushed) order list.
type AdminStats struct {
	TotalOrders   int
	TotalRevenue  float64
	PendingOrders int
}

// AdminView is the dashboard view model.
type AdminView struct {
	Orders  []api.Order
	Stats   AdminStats
	LoadErr bool
}

// AdminHandler renders the order dashboard. Orders pushed since startup are
// prepended to the fetched list without deduplication; the backend decides
// what /orders returns for the caller, so the role check here is only the
// navigation gate.
func (a *app) AdminHandler(w http.ResponseWriter, r *http.Request) {
	_, ok := a.requireSession(w, r)
	if !ok {
		return
	}

	fetched, err := a.gateway.Orders(r.Context())
	a.metrics.RecordGatewayCall(err)

	orders := append(a.hub.Recent(), fetched...)

	vm := a.pageData(r, "Admin Dashboard | Maison OUTFITS")
	vm.Admin = &AdminView{
		Orders:  orders,
		Stats:   computeStats(orders),
		LoadErr: err != nil,
	}
	a.renderPage(w, r, "admin", vm)
}

func computeStats(orders []api.Order) AdminStats {
	s := AdminStats{TotalOrders: len(orders)}
	for _, o := range orders {
		s.TotalRevenue += o.TotalAmount
		if o.Status == "pending" {
			s.PendingOrders++
		}
	}
	return s
}

// AdminEventsHandler re-broadcasts new_order push events to the dashboard
// as server-sent events.
func (a *app) AdminEventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	if _, authed := a.requireSession(w, r); !authed {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := a.hub.Subscribe()
	defer cancel()

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := w.Write([]byte(": keep-alive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case order := <-events:
			payload, err := json.Marshal(order)
			if err != nil {
				a.logger.Warn("admin events: marshal order", zap.Error(err))
				continue
			}
			if _, err := w.Write([]byte("event: " + push.EventNewOrder + "\ndata: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
