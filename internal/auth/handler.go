package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"notesapp/internal/auth/model"
	"notesapp/internal/auth/service"
	"notesapp/pkg/logger"
	"notesapp/pkg/response"
	"notesapp/pkg/validator"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validator
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: service, Validate: validator.New()}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "All fields are required", err.Error())
		return
	}

	user, err := h.Service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(w, http.StatusConflict, "Email already in use", "")
			return
		}
		logger.Sugar.Errorf("Error registering user: %v", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	response.JSON(w, http.StatusCreated, model.RegisterResponse{User: user})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Email and password are required", err.Error())
		return
	}

	token, user, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		logger.Sugar.Errorf("Error logging in user: %v", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	response.JSON(w, http.StatusOK, model.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}
