package dashboard

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/comandahq/comanda/internal/order"
	"github.com/comandahq/comanda/internal/window"
)

type Handler struct {
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
	orderRepo order.OrderRepo
}

type HandlerDeps struct {
	OrderRepo order.OrderRepo
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
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Get("/sales", h.Sales)
		r.Get("/topdish", h.TopDish)
		r.Get("/repeatcustomers", h.RepeatCustomers)
		r.Get("/peakhour", h.PeakHour)
	})
}

// Sales returns the sales total and order count for the requested window:
// an explicit from/to range, a date plus period, or today by default.
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Sales")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	q := r.URL.Query()
	win, err := window.Resolve(q.Get("date"), q.Get("period"), q.Get("from"), q.Get("to"))
	if err != nil {
		log.Debug("invalid window parameters", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid date range parameters")
		return
	}

	orders, err := h.orderRepo.ListInWindow(ctx, win)
	if err != nil {
		log.Error("error retrieving orders for sales summary", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not compute sales summary")
		return
	}

	apt.RespondSuccess(w, Sales(orders))
}

// TopDish returns the most ordered dish for the requested window.
func (h *Handler) TopDish(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TopDish")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	q := r.URL.Query()
	win, err := window.Resolve(q.Get("date"), "", q.Get("from"), q.Get("to"))
	if err != nil {
		log.Debug("invalid window parameters", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid date range parameters")
		return
	}

	orders, err := h.orderRepo.ListInWindow(ctx, win)
	if err != nil {
		log.Error("error retrieving orders for top dish", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not compute top dish")
		return
	}

	top := TopDish(orders)
	if top == nil {
		apt.Respond(w, http.StatusOK, nil, nil)
		return
	}

	apt.RespondSuccess(w, top)
}

// RepeatCustomers returns customers with two or more orders in the requested
// window, busiest first. A month parameter ("2006-01") selects a whole
// calendar month; a name parameter restricts the match to one customer.
func (h *Handler) RepeatCustomers(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RepeatCustomers")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	q := r.URL.Query()

	var win window.Window
	var err error
	if from, to := q.Get("from"), q.Get("to"); from != "" && to != "" {
		win, err = window.Span(from, to)
	} else if month := q.Get("month"); month != "" {
		win, err = window.Month(month)
	} else {
		win = window.Today()
	}
	if err != nil {
		log.Debug("invalid window parameters", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid date range parameters")
		return
	}

	orders, err := h.orderRepo.ListInWindow(ctx, win)
	if err != nil {
		log.Error("error retrieving orders for repeat customers", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not compute repeat customers")
		return
	}

	apt.RespondSuccess(w, RepeatCustomers(orders, q.Get("name")))
}

// PeakHour returns the busiest hour of the given day. The date parameter is
// required.
func (h *Handler) PeakHour(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.PeakHour")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	date := r.URL.Query().Get("date")
	if date == "" {
		log.Debug("missing date parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing date parameter")
		return
	}

	win, err := window.Day(date)
	if err != nil {
		log.Debug("invalid date parameter", "date", date)
		apt.RespondError(w, http.StatusBadRequest, "Invalid date parameter")
		return
	}

	orders, err := h.orderRepo.ListInWindow(ctx, win)
	if err != nil {
		log.Error("error retrieving orders for peak hour", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not compute peak hour")
		return
	}

	peak := PeakHour(orders)
	if peak == nil {
		apt.Respond(w, http.StatusOK, nil, nil)
		return
	}

	apt.RespondSuccess(w, peak)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
