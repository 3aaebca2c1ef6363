package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/adapter/metrics"
	"github.com/rl1809/ops-console/internal/core/domain"
	"github.com/rl1809/ops-console/internal/core/panel"
	"github.com/rl1809/ops-console/internal/core/shell"
)

// HealthChecker reports whether the upstream gateway answers.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HTTPHandler struct {
	shell   *shell.Shell
	health  HealthChecker
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

// ScreenResponse is the body of every console response.
type ScreenResponse struct {
	shell.Screen
	Error     string           `json:"error,omitempty"`
	ErrorKind domain.ErrorKind `json:"error_kind,omitempty"`
	Result    any              `json:"result,omitempty"`
}

type lookupRequest struct {
	SKU     string `json:"sku"`
	OrderID string `json:"order_id"`
}

func NewHTTPHandler(sh *shell.Shell, health HealthChecker, m *metrics.Metrics, log logrus.FieldLogger) *HTTPHandler {
	return &HTTPHandler{
		shell:   sh,
		health:  health,
		metrics: m,
		log:     log.WithField("component", "http"),
	}
}

// Router wires every console route.
func (h *HTTPHandler) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}

	c := r.PathPrefix("/console").Subrouter()
	c.HandleFunc("", h.Render).Methods(http.MethodGet)
	c.HandleFunc("/panels/{panel}", h.SelectPanel).Methods(http.MethodPost)
	c.HandleFunc("/orders/refresh", h.RefreshOrders).Methods(http.MethodPost)
	c.HandleFunc("/inventory/lookup", h.LookupInventory).Methods(http.MethodPost)
	c.HandleFunc("/payments/lookup", h.LookupPayment).Methods(http.MethodPost)
	c.HandleFunc("/{panel}/draft", h.UpdateDraft).Methods(http.MethodPut)
	c.HandleFunc("/{panel}/submit", h.Submit).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	if h.metrics != nil {
		return h.metrics.InstrumentHandler(r)
	}
	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	if err := h.health.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "degraded", "gateway": domain.Message(err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "gateway": "ok"})
}

func (h *HTTPHandler) Render(w http.ResponseWriter, r *http.Request) {
	h.respond(w, nil, nil)
}

func (h *HTTPHandler) SelectPanel(w http.ResponseWriter, r *http.Request) {
	p, err := shell.ParsePanel(mux.Vars(r)["panel"])
	if err != nil {
		h.respond(w, nil, err)
		return
	}
	h.respond(w, nil, h.shell.Select(r.Context(), p))
}

func (h *HTTPHandler) RefreshOrders(w http.ResponseWriter, r *http.Request) {
	h.respond(w, nil, h.shell.Orders.Refresh(r.Context()))
}

func (h *HTTPHandler) LookupInventory(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !h.decode(w, r, &req) {
		return
	}
	rec, err := h.shell.Inventory.Lookup(r.Context(), req.SKU)
	h.respondResult(w, rec, err)
}

func (h *HTTPHandler) LookupPayment(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.shell.Payments.Lookup(r.Context(), req.OrderID)
	h.respondResult(w, p, err)
}

func (h *HTTPHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	p, err := shell.ParsePanel(mux.Vars(r)["panel"])
	if err != nil {
		h.respond(w, nil, err)
		return
	}

	switch p {
	case shell.PanelOrders:
		var d panel.OrderDraft
		if !h.decode(w, r, &d) {
			return
		}
		h.shell.Orders.SetDraft(d)
	case shell.PanelInventory:
		var d panel.InventoryDraft
		if !h.decode(w, r, &d) {
			return
		}
		h.shell.Inventory.SetDraft(d)
	case shell.PanelPayments:
		var d panel.PaymentDraft
		if !h.decode(w, r, &d) {
			return
		}
		h.shell.Payments.SetDraft(d)
	}
	h.respond(w, nil, nil)
}

func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, err := shell.ParsePanel(mux.Vars(r)["panel"])
	if err != nil {
		h.respond(w, nil, err)
		return
	}

	switch p {
	case shell.PanelOrders:
		id, err := h.shell.Orders.Submit(r.Context())
		h.respondResult(w, map[string]string{"order_id": id}, err)
	case shell.PanelInventory:
		ack, err := h.shell.Inventory.Submit(r.Context())
		h.respondResult(w, map[string]string{"message": ack.Message}, err)
	case shell.PanelPayments:
		payment, err := h.shell.Payments.Submit(r.Context())
		h.respondResult(w, payment, err)
	}
}

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.log.WithError(err).Debug("invalid request body")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *HTTPHandler) respondResult(w http.ResponseWriter, result any, err error) {
	if err != nil {
		h.respond(w, nil, err)
		return
	}
	h.respond(w, result, nil)
}

// respond renders the console and reports err, if any, alongside it.
func (h *HTTPHandler) respond(w http.ResponseWriter, result any, err error) {
	body := ScreenResponse{Screen: h.shell.Render(), Result: result}
	if err == nil {
		writeJSON(w, http.StatusOK, body)
		return
	}

	body.Error = domain.Message(err)
	body.ErrorKind = domain.KindOf(err)
	writeJSON(w, statusFor(err), body)
}

func statusFor(err error) int {
	var e *domain.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindDomain:
		if domain.IsNotFound(err) {
			return http.StatusNotFound
		}
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
