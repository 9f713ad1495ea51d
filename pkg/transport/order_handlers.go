package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"shopservice/pkg/domain/model"
	"shopservice/pkg/domain/service"
)

type orderHandlers struct {
	orders service.OrderService
}

type createOrderRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	Description *string   `json:"description"`
}

type updateOrderRequest struct {
	Quantity    *int     `json:"quantity"`
	TotalPrice  *float64 `json:"total_price"`
	Description *string  `json:"description"`
	OrderStatus *string  `json:"order_status"`
}

type changeOrderStatusRequest struct {
	OrderStatus string `json:"order_status"`
}

type deletedOrderResponse struct {
	DeletedOrderID string `json:"deleted_order_id"`
}

type updatedOrderResponse struct {
	UpdatedOrderID string `json:"updated_order_id"`
}

func (h *orderHandlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var body createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), service.CreateOrderInput{
		UserID:      body.UserID,
		ProductID:   body.ProductID,
		Quantity:    body.Quantity,
		TotalPrice:  body.TotalPrice,
		Description: body.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if actor, ok := currentUser(r.Context()); ok {
		log.WithFields(log.Fields{
			"orderID": order.ID,
			"actor":   actor.Email,
		}).Info("order created")
	}
	writeJSON(w, http.StatusCreated, newShowOrder(*order, nil))
}

func (h *orderHandlers) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "order_id must be a valid uuid"})
		return
	}

	view, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newShowOrder(view.Order, newShowUserWithOrders(view.User)))
}

func (h *orderHandlers) getAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]showOrder, 0, len(orders))
	for _, order := range orders {
		views = append(views, newShowOrder(order.Order, newShowUser(order.User)))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *orderHandlers) updateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "order_id must be a valid uuid"})
		return
	}

	var body updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	// order_status is accepted on the wire for compatibility but never
	// forwarded; the service strips it before the update reaches storage.
	patch := model.OrderPatch{
		Quantity:    body.Quantity,
		TotalPrice:  body.TotalPrice,
		Description: body.Description,
	}
	if body.OrderStatus != nil {
		status := model.OrderStatus(*body.OrderStatus)
		patch.Status = &status
	}

	updatedID, err := h.orders.UpdateOrder(r.Context(), orderID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updatedOrderResponse{UpdatedOrderID: updatedID.String()})
}

func (h *orderHandlers) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "order_id must be a valid uuid"})
		return
	}

	deletedID, err := h.orders.CancelOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedOrderResponse{DeletedOrderID: deletedID.String()})
}

func (h *orderHandlers) changeOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "order_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "order_id must be a valid uuid"})
		return
	}

	var body changeOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	updatedID, err := h.orders.ChangeOrderStatus(r.Context(), orderID, model.OrderStatus(body.OrderStatus))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updatedOrderResponse{UpdatedOrderID: updatedID.String()})
}
