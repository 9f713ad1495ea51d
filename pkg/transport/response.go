package transport

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"shopservice/pkg/domain/model"
	"shopservice/pkg/domain/service"
	"shopservice/pkg/infrastructure/auth"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("write response")
	}
}

// writeError maps domain errors onto HTTP statuses. Client-caused failures
// are surfaced directly; storage conflicts and unknown errors are logged
// and reported as server-side.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidStatusTransition):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidTotalPrice),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidStockQuantity),
		errors.Is(err, service.ErrNoFieldsProvided),
		errors.Is(err, service.ErrInvalidOrderStatus),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidSurname),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, model.ErrEmailTaken):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: err.Error()})
	case errors.Is(err, model.ErrStorageConflict):
		log.WithError(err).Error("storage conflict")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: "database conflict, retry the request"})
	default:
		log.WithError(err).Error("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}

type showUser struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type showUserWithOrders struct {
	showUser
	TotalOrders int     `json:"total_orders"`
	TotalAmount float64 `json:"total_amount"`
}

type showProduct struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	ProductStatus string  `json:"product_status"`
}

type showOrder struct {
	OrderID     string      `json:"order_id"`
	ProductID   string      `json:"product_id"`
	Quantity    int         `json:"quantity"`
	TotalPrice  float64     `json:"total_price"`
	Description *string     `json:"description"`
	OrderStatus string      `json:"order_status"`
	User        interface{} `json:"user,omitempty"`
}

func newShowUser(user model.User) showUser {
	return showUser{
		UserID:   user.ID.String(),
		Name:     user.Name,
		Surname:  user.Surname,
		Email:    user.Email,
		IsActive: user.IsActive,
	}
}

func newShowUserWithOrders(view model.UserWithOrderSummary) showUserWithOrders {
	return showUserWithOrders{
		showUser:    newShowUser(view.User),
		TotalOrders: view.TotalOrders,
		TotalAmount: view.TotalAmount,
	}
}

func newShowProduct(product model.Product) showProduct {
	return showProduct{
		ProductID:     product.ID.String(),
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		ProductStatus: string(product.Status),
	}
}

func newShowOrder(order model.Order, user interface{}) showOrder {
	return showOrder{
		OrderID:     order.ID.String(),
		ProductID:   order.ProductID.String(),
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
		Description: order.Description,
		OrderStatus: string(order.Status),
		User:        user,
	}
}
