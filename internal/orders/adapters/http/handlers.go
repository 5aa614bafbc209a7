package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/app"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/app/commands"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
	"github.com/shopspring/decimal"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/orders", h.handleOrders)
	mux.HandleFunc("/api/orders/", h.handleOrderSubtree)
}

type orderItemRequest struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	ProductAmount int             `json:"productAmount"`
	ProductPrice  decimal.Decimal `json:"productPrice"`
}

type createOrderRequest struct {
	OrderNumber             string             `json:"orderNumber,omitempty"`
	Items                   []orderItemRequest `json:"items"`
	InvoiceAddress          string             `json:"invoiceAddress"`
	InvoiceEmailAddress     string             `json:"invoiceEmailAddress"`
	InvoiceCreditCardNumber string             `json:"invoiceCreditCardNumber"`
	Notes                   string             `json:"notes,omitempty"`
}

type orderItemResponse struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	ProductAmount int             `json:"productAmount"`
	ProductPrice  decimal.Decimal `json:"productPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

type orderResponse struct {
	OrderNumber             string              `json:"orderNumber"`
	Status                  string              `json:"status"`
	Items                   []orderItemResponse `json:"items"`
	TotalAmount             decimal.Decimal     `json:"totalAmount"`
	InvoiceAddress          string              `json:"invoiceAddress"`
	InvoiceEmailAddress     string              `json:"invoiceEmailAddress"`
	InvoiceCreditCardNumber string              `json:"invoiceCreditCardNumber"`
	Notes                   string              `json:"notes,omitempty"`
	CreatedAt               time.Time           `json:"createdAt"`
	UpdatedAt               *time.Time          `json:"updatedAt,omitempty"`
}

func toOrderResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, orderItemResponse{
			ProductID:     item.ProductID(),
			ProductName:   item.ProductName(),
			ProductAmount: item.ProductAmount(),
			ProductPrice:  item.ProductPrice(),
			TotalPrice:    item.TotalPrice(),
		})
	}

	return orderResponse{
		OrderNumber:             order.Number().String(),
		Status:                  string(order.Status()),
		Items:                   items,
		TotalAmount:             order.TotalAmount(),
		InvoiceAddress:          order.InvoiceAddress().String(),
		InvoiceEmailAddress:     order.InvoiceEmail(),
		InvoiceCreditCardNumber: order.CreditCard().Masked(),
		Notes:                   order.Notes(),
		CreatedAt:               order.CreatedAt(),
		UpdatedAt:               order.UpdatedAt(),
	}
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createOrder(w, r)
	case http.MethodGet:
		h.listOrders(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleOrderSubtree routes /api/orders/{number}[/...] paths.
func (h *Handler) handleOrderSubtree(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/orders/"), "/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	segments := strings.Split(trimmed, "/")
	number := segments[0]

	switch {
	case len(segments) == 1:
		switch r.Method {
		case http.MethodGet:
			h.getOrder(w, r, number)
		case http.MethodDelete:
			h.deleteOrder(w, r, number)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(segments) == 2 && segments[1] == "status":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.updateStatus(w, r, number)
	case len(segments) == 2 && segments[1] == "cancel":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.cancelOrder(w, r, number)
	case len(segments) == 2 && segments[1] == "items":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.addItem(w, r, number)
	case len(segments) == 3 && segments[1] == "items":
		switch r.Method {
		case http.MethodPut:
			h.updateItemQuantity(w, r, number, segments[2])
		case http.MethodDelete:
			h.removeItem(w, r, number, segments[2])
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey != "" {
		stored, err := h.service.GetIdempotentResponse(ctx, idemKey)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if stored != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stored.StatusCode)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	var payload createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cmd := commands.CreateOrderCommand{
		OrderNumber:             payload.OrderNumber,
		InvoiceEmailAddress:     payload.InvoiceEmailAddress,
		InvoiceAddress:          payload.InvoiceAddress,
		InvoiceCreditCardNumber: payload.InvoiceCreditCardNumber,
		Notes:                   payload.Notes,
	}
	for _, item := range payload.Items {
		cmd.Items = append(cmd.Items, commands.CreateOrderItem{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			ProductAmount: item.ProductAmount,
			ProductPrice:  item.ProductPrice,
		})
	}

	order, err := h.service.CreateOrder(ctx, cmd)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	body, err := json.Marshal(toOrderResponse(order))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if idemKey != "" {
		stored := ports.StoredResponse{
			StatusCode:  http.StatusCreated,
			Body:        body,
			OrderNumber: order.Number().String(),
		}
		if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, number string) {
	order, err := h.service.GetOrder(r.Context(), number)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": responses})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, number string) {
	var payload updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), number, payload.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request, number string) {
	order, err := h.service.CancelOrder(r.Context(), number)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request, number string) {
	var payload orderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.AddItem(r.Context(), commands.AddItemCommand{
		OrderNumber:   number,
		ProductID:     payload.ProductID,
		ProductName:   payload.ProductName,
		ProductAmount: payload.ProductAmount,
		ProductPrice:  payload.ProductPrice,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItemQuantity(w http.ResponseWriter, r *http.Request, number, productID string) {
	var payload updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateItemQuantity(r.Context(), commands.UpdateItemQuantityCommand{
		OrderNumber: number,
		ProductID:   productID,
		Quantity:    payload.Quantity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request, number, productID string) {
	order, err := h.service.RemoveItem(r.Context(), commands.RemoveItemCommand{
		OrderNumber: number,
		ProductID:   productID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request, number string) {
	if err := h.service.DeleteOrder(r.Context(), number); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDomainError maps domain and repository failures to HTTP status
// codes: InvalidArgument and InvalidState map to 400, NotFound to 404,
// duplicate numbers to 409, anything else to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if errors.Is(err, ports.ErrDuplicateOrderNumber) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if kind, ok := domain.KindOf(err); ok {
		switch kind {
		case domain.KindNotFound:
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
