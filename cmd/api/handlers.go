package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"shawarma/pkg/logger"
	"shawarma/pkg/menu"
	"shawarma/pkg/metrics"
	"shawarma/pkg/order"
	"shawarma/pkg/otel"
)

const version = "1.0.0"

// api bundles the dependencies the handlers need.
type api struct {
	svc     *order.Service
	catalog *menu.Catalog
	log     *logger.Logger
	tracer  trace.Tracer
}

// newRouter wires all routes and middleware. m may be nil to skip metrics
// collection.
func newRouter(a *api, m *metrics.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(a.traceMiddleware)
	r.Use(a.requestLogMiddleware)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.HandleFunc("/ping", a.pingHandler).Methods(http.MethodGet)
	r.HandleFunc("/menu", a.menuHandler).Methods(http.MethodGet)
	r.HandleFunc("/menu/{itemName}", a.menuItemHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders", a.createOrderHandler).Methods(http.MethodPost)
	r.HandleFunc("/orders", a.listOrdersHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderId}", a.getOrderHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderId}", a.updateOrderHandler).Methods(http.MethodPut)
	r.HandleFunc("/orders/{orderId}", a.cancelOrderHandler).Methods(http.MethodDelete)
	r.HandleFunc("/orders/{orderId}/ready", a.readyOrderHandler).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

type pingResponse struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
	Version string `json:"version"`
}

type menuResponse struct {
	Status string               `json:"status"`
	Menu   map[string]menu.Item `json:"menu"`
}

type menuItemResponse struct {
	Status   string    `json:"status"`
	MenuItem menu.Item `json:"menuItem"`
}

type orderResponse struct {
	Status  string      `json:"status"`
	Order   order.Order `json:"order"`
	Message string      `json:"message,omitempty"`
}

type ordersResponse struct {
	Status string        `json:"status"`
	Orders []order.Order `json:"orders"`
}

type cancelResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// pingHandler reports service health.
// @Summary Health check
// @Produce json
// @Success 200 {object} pingResponse
// @Router /ping [get]
func (a *api) pingHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, pingResponse{
		Message: "Welcome to the Yerevan Shawarma API 🥙",
		Docs:    "/swagger/index.html",
		Version: version,
	})
}

// menuHandler returns the full menu.
// @Summary Get menu
// @Produce json
// @Success 200 {object} menuResponse
// @Router /menu [get]
func (a *api) menuHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "menuHandler")
	defer span.End()

	respond(w, http.StatusOK, menuResponse{Status: "success", Menu: a.catalog.All()})
}

// menuItemHandler returns one menu item by name.
// @Summary Get menu item
// @Produce json
// @Param itemName path string true "Item name"
// @Success 200 {object} menuItemResponse
// @Failure 404 {object} errorResponse
// @Router /menu/{itemName} [get]
func (a *api) menuItemHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "menuItemHandler")
	defer span.End()

	item, err := a.catalog.Get(mux.Vars(r)["itemName"])
	if err != nil {
		respondError(w, http.StatusNotFound, err)
		return
	}
	respond(w, http.StatusOK, menuItemResponse{Status: "success", MenuItem: item})
}

// createOrderHandler creates a new order.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body order.NewOrder true "Order"
// @Success 200 {object} orderResponse
// @Failure 422 {object} errorResponse
// @Router /orders [post]
func (a *api) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var no order.NewOrder
	if err := json.NewDecoder(r.Body).Decode(&no); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	o, err := a.svc.Create(ctx, no)
	if err != nil {
		a.respondServiceError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, orderResponse{
		Status:  "success",
		Order:   o,
		Message: "Order #" + strconv.Itoa(o.ID) + " created",
	})
}

// listOrdersHandler lists all orders.
// @Summary List orders
// @Produce json
// @Success 200 {object} ordersResponse
// @Router /orders [get]
func (a *api) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	orders, err := a.svc.List(ctx)
	if err != nil {
		a.respondServiceError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, ordersResponse{Status: "success", Orders: orders})
}

// getOrderHandler retrieves an order by id.
// @Summary Get order
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} orderResponse
// @Failure 404 {object} errorResponse
// @Router /orders/{orderId} [get]
func (a *api) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	id, ok := orderID(w, r)
	if !ok {
		return
	}
	o, err := a.svc.Get(ctx, id)
	if err != nil {
		a.respondServiceError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, orderResponse{Status: "success", Order: o})
}

// updateOrderHandler replaces the items of an in-progress order. The body
// is a bare JSON array of item names.
// @Summary Update order items
// @Accept json
// @Produce json
// @Param orderId path int true "Order ID"
// @Param items body []string true "New items"
// @Success 200 {object} orderResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /orders/{orderId} [put]
func (a *api) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateOrderHandler")
	defer span.End()

	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var items []string
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	o, err := a.svc.UpdateItems(ctx, id, items)
	if err != nil {
		a.respondServiceError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, orderResponse{Status: "updated", Order: o})
}

// readyOrderHandler marks an order as ready for pickup.
// @Summary Mark order ready
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} orderResponse
// @Failure 404 {object} errorResponse
// @Router /orders/{orderId}/ready [post]
func (a *api) readyOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "readyOrderHandler")
	defer span.End()

	id, ok := orderID(w, r)
	if !ok {
		return
	}
	o, err := a.svc.MarkReady(ctx, id)
	if err != nil {
		a.respondServiceError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, orderResponse{Status: "success", Order: o})
}

// cancelOrderHandler cancels an in-progress order.
// @Summary Cancel order
// @Produce json
// @Param orderId path int true "Order ID"
// @Success 200 {object} cancelResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /orders/{orderId} [delete]
func (a *api) cancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "cancelOrderHandler")
	defer span.End()

	id, ok := orderID(w, r)
	if !ok {
		return
	}
	if err := a.svc.Cancel(ctx, id); err != nil {
		a.respondServiceError(ctx, w, err)
		return
	}
	respond(w, http.StatusOK, cancelResponse{
		Status:  "cancelled",
		Message: "Order #" + strconv.Itoa(id) + " cancelled",
	})
}

// orderID parses the orderId path variable, responding 400 on garbage.
func orderID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["orderId"])
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Detail: "order id must be an integer"})
		return 0, false
	}
	return id, true
}

// respondServiceError maps lifecycle errors onto HTTP statuses: validation
// and terminal-state violations are 422, missing orders are 404.
func (a *api) respondServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var ve *order.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, order.ErrOrderReady):
		respondError(w, http.StatusUnprocessableEntity, err)
	default:
		a.log.Error(ctx, "unexpected service error", "error", err)
		respondError(w, http.StatusInternalServerError, err)
	}
}

func respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respond(w, status, errorResponse{Detail: err.Error()})
}
