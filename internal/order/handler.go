package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/comandahq/comanda/internal/window"
	"github.com/comandahq/comanda/pkg/enums/orderstatus"
	"github.com/comandahq/comanda/pkg/enums/ordertype"
	"github.com/comandahq/comanda/pkg/event"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
	orderRepo OrderRepo
	publisher events.Publisher
	validate  *validator.Validate
}

type HandlerDeps struct {
	OrderRepo OrderRepo
	Publisher events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &Handler{
		config:    config,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
		orderRepo: hd.OrderRepo,
		publisher: hd.Publisher,
		validate:  validator.New(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
	})
}

// CreateOrder persists a new order with a computed total and broadcasts it to
// every connected display.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodeOrderCreatePayload(w, r, log)
	if !ok {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Debug("invalid create order request", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}

	if ordertype.ByName(req.OrderType) == nil {
		log.Debug("invalid order type", "order_type", req.OrderType)
		apt.RespondError(w, http.StatusBadRequest, "Invalid order type")
		return
	}

	order := NewOrder()
	order.OrderType = req.OrderType
	order.CustomerName = req.CustomerName
	order.Mobile = req.Mobile
	order.TableNumber = req.TableNumber
	order.Address = req.Address
	for _, item := range req.Items {
		order.Items = append(order.Items, OrderItem{
			Name:  item.Name,
			Price: item.Price,
			Qty:   item.Qty,
		})
	}
	order.CalculateTotal()
	order.BeforeCreate()

	if err := h.orderRepo.Create(ctx, order); err != nil {
		log.Error("cannot create order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	h.publishOrderEvent(ctx, event.EventOrderCreated, order)

	links := apt.RESTfulLinksFor(order)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, order, links...)
}

// ListOrders returns the orders of a single day. Without a date parameter it
// covers the current day in the restaurant's fixed offset. Soft-deleted
// orders are never included.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	date := r.URL.Query().Get("date")
	win, err := window.Resolve(date, "", "", "")
	if err != nil {
		log.Debug("invalid date parameter", "date", date)
		apt.RespondError(w, http.StatusBadRequest, "Invalid date parameter")
		return
	}

	orders, err := h.orderRepo.ListInWindow(ctx, win)
	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

// UpdateOrderStatus overwrites the status of an existing order and broadcasts
// the change. Repeating the same update is harmless. The "deleted" sentinel
// soft-deletes the order.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrderStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	req, ok := h.decodeStatusUpdatePayload(w, r, log)
	if !ok {
		return
	}

	if orderstatus.ByName(req.Status) == nil && req.Status != orderstatus.Deleted.Code() {
		log.Debug("invalid status", "status", req.Status)
		apt.RespondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	order.SetStatus(req.Status)

	if err := h.orderRepo.Save(ctx, order); err != nil {
		log.Error("cannot update order status", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	h.publishOrderEvent(ctx, event.EventOrderUpdated, order)

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

// publishOrderEvent broadcasts the full order record. Publish failures are
// logged and never affect the originating request.
func (h *Handler) publishOrderEvent(ctx context.Context, eventType string, o *Order) {
	if h.publisher == nil {
		return
	}

	evt := event.OrderEvent{
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Order:      o.EventPayload(),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order event", "error", err, "event_type", eventType)
		return
	}

	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		h.logger.Error("cannot publish order event", "error", err, "event_type", eventType, "order_id", o.ID.String())
		return
	}

	h.logger.Info("published order event", "event_type", eventType, "order_id", o.ID.String())
}

// Helper methods

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

// Payload decoders

type OrderCreateRequest struct {
	OrderType    string                   `json:"orderType" validate:"required"`
	CustomerName string                   `json:"customerName" validate:"required"`
	Mobile       string                   `json:"mobile"`
	TableNumber  string                   `json:"tableNumber"`
	Address      string                   `json:"address"`
	Items        []OrderItemCreateRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemCreateRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Qty   int     `json:"qty" validate:"gte=1"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) decodeOrderCreatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (OrderCreateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return OrderCreateRequest{}, false
	}

	var req OrderCreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return OrderCreateRequest{}, false
	}

	return req, true
}

func (h *Handler) decodeStatusUpdatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (OrderStatusUpdateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return OrderStatusUpdateRequest{}, false
	}

	var req OrderStatusUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return OrderStatusUpdateRequest{}, false
	}

	return req, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
