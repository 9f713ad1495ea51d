package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"shopservice/pkg/domain/service"
	"shopservice/pkg/infrastructure/auth"
)

// Router assembles the HTTP API. Registration and login are public; every
// other route requires a valid bearer token.
func Router(users service.UserService, products service.ProductService,
	orders service.OrderService, tokens auth.TokenManager) http.Handler {

	userH := &userHandlers{users: users}
	productH := &productHandlers{products: products}
	orderH := &orderHandlers{orders: orders}
	authH := &authHandlers{users: users, tokens: tokens}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/login/token", authH.loginForAccessToken).Methods(http.MethodPost)
	api.HandleFunc("/user", userH.createUser).Methods(http.MethodPost)

	secured := api.PathPrefix("").Subrouter()
	secured.Use(authMiddleware(tokens, users))

	secured.HandleFunc("/user", userH.getUser).Methods(http.MethodGet)
	secured.HandleFunc("/user", userH.updateUser).Methods(http.MethodPatch)
	secured.HandleFunc("/user", userH.deleteUser).Methods(http.MethodDelete)

	secured.HandleFunc("/product", productH.createProduct).Methods(http.MethodPost)
	secured.HandleFunc("/product", productH.getAllProducts).Methods(http.MethodGet)
	secured.HandleFunc("/product/{product_id}", productH.getProduct).Methods(http.MethodGet)
	secured.HandleFunc("/product/{product_id}", productH.updateProduct).Methods(http.MethodPatch)
	secured.HandleFunc("/product/{product_id}", productH.deleteProduct).Methods(http.MethodDelete)

	secured.HandleFunc("/order", orderH.createOrder).Methods(http.MethodPost)
	secured.HandleFunc("/order", orderH.getAllOrders).Methods(http.MethodGet)
	secured.HandleFunc("/order/{order_id}", orderH.getOrder).Methods(http.MethodGet)
	secured.HandleFunc("/order/{order_id}", orderH.updateOrder).Methods(http.MethodPatch)
	secured.HandleFunc("/order/{order_id}", orderH.deleteOrder).Methods(http.MethodDelete)
	secured.HandleFunc("/order/{order_id}/status", orderH.changeOrderStatus).Methods(http.MethodPatch)

	return logMiddleware(r)
}
