package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"notesapp/internal/category/model"
	"notesapp/internal/category/service"
	"notesapp/pkg/logger"
	"notesapp/pkg/response"
	"notesapp/pkg/validator"
)

type CategoryHandler struct {
	Service  *service.CategoryService
	Validate *validator.Validator
}

func NewCategoryHandler(service *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Service: service, Validate: validator.New()}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.List(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Error fetching categories: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error fetching categories", err.Error())
		return
	}

	response.JSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	category, err := h.Service.Create(r.Context(), req.Name)
	if err != nil {
		logger.Sugar.Errorf("Error creating category: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error creating category", err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, category)
}

// ListNotesByCategory handles GET /categories/{categoryId}/notes
func (h *CategoryHandler) ListNotesByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.PathValue("categoryId"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category id", "")
		return
	}

	notes, err := h.Service.ListNotes(r.Context(), categoryID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching notes for category %d: %v", categoryID, err)
		response.Error(w, http.StatusInternalServerError, "Error fetching notes by category", err.Error())
		return
	}

	response.JSON(w, http.StatusOK, notes)
}
