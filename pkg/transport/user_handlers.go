package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"shopservice/pkg/domain/model"
	"shopservice/pkg/domain/service"
)

type userHandlers struct {
	users service.UserService
}

type createUserRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Email   *string `json:"email"`
}

type deletedUserResponse struct {
	DeletedUserID string `json:"deleted_user_id"`
}

type updatedUserResponse struct {
	UpdatedUserID string `json:"updated_user_id"`
}

func (h *userHandlers) createUser(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	user, err := h.users.RegisterUser(r.Context(), body.Name, body.Surname, body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newShowUser(*user))
}

func (h *userHandlers) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "user_id must be a valid uuid"})
		return
	}

	view, err := h.users.GetUserWithOrders(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newShowUserWithOrders(*view))
}

func (h *userHandlers) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "user_id must be a valid uuid"})
		return
	}

	var body updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	updatedID, err := h.users.UpdateUser(r.Context(), userID, model.UserPatch{
		Name:    body.Name,
		Surname: body.Surname,
		Email:   body.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updatedUserResponse{UpdatedUserID: updatedID.String()})
}

func (h *userHandlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "user_id must be a valid uuid"})
		return
	}

	deletedID, err := h.users.DeactivateUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedUserResponse{DeletedUserID: deletedID.String()})
}

func queryUserID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.URL.Query().Get("user_id"))
}
