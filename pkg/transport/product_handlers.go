package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"shopservice/pkg/domain/model"
	"shopservice/pkg/domain/service"
)

type productHandlers struct {
	products service.ProductService
}

type createProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

type deletedProductResponse struct {
	DeletedProductID string `json:"deleted_product_id"`
}

type updatedProductResponse struct {
	UpdatedProductID string `json:"updated_product_id"`
}

func (h *productHandlers) createProduct(w http.ResponseWriter, r *http.Request) {
	var body createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	product, err := h.products.CreateProduct(r.Context(), body.Name, body.Description, body.Price, body.StockQuantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newShowProduct(*product))
}

func (h *productHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "product_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "product_id must be a valid uuid"})
		return
	}

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newShowProduct(*product))
}

func (h *productHandlers) getAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]showProduct, 0, len(products))
	for _, product := range products {
		views = append(views, newShowProduct(product))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *productHandlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "product_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "product_id must be a valid uuid"})
		return
	}

	var body updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	updatedID, err := h.products.UpdateProduct(r.Context(), productID, model.ProductPatch{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updatedProductResponse{UpdatedProductID: updatedID.String()})
}

func (h *productHandlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "product_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "product_id must be a valid uuid"})
		return
	}

	deletedID, err := h.products.DeleteProduct(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedProductResponse{DeletedProductID: deletedID.String()})
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}
