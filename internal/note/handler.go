package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"notesapp/internal/note/model"
	"notesapp/internal/note/service"
	"notesapp/middleware"
	"notesapp/pkg/logger"
	"notesapp/pkg/response"
	"notesapp/pkg/validator"
)

type NoteHandler struct {
	Service  *service.NoteService
	Validate *validator.Validator
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service, Validate: validator.New()}
}

// ListNotes handles GET /notes?categoryId=
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid categoryId parameter", "")
			return
		}
		categoryID = &id
	}

	notes, err := h.Service.List(r.Context(), categoryID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching notes: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error fetching notes", err.Error())
		return
	}

	response.JSON(w, http.StatusOK, notes)
}

// CreateNote handles POST /notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req model.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.Create(r.Context(), userID(r), req.Title, req.Content, req.Status, req.CategoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryMissing) {
			response.Error(w, http.StatusBadRequest, "Category not found", "")
			return
		}
		logger.Sugar.Errorf("Error creating note: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error creating note", err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid note id", "")
		return
	}

	var req model.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.Update(r.Context(), userID(r), id, req.Title, req.Content, req.Status, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			response.Error(w, http.StatusNotFound, "Note not found", "")
		case errors.Is(err, service.ErrCategoryMissing):
			response.Error(w, http.StatusBadRequest, "Category not found", "")
		default:
			logger.Sugar.Errorf("Error updating note %d: %v", id, err)
			response.Error(w, http.StatusInternalServerError, "Error updating note", err.Error())
		}
		return
	}

	response.JSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/{id} and returns the deleted record.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid note id", "")
		return
	}

	note, err := h.Service.Delete(r.Context(), userID(r), id)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			response.Error(w, http.StatusNotFound, "Note not found", "")
			return
		}
		logger.Sugar.Errorf("Error deleting note %d: %v", id, err)
		response.Error(w, http.StatusInternalServerError, "Error deleting note", err.Error())
		return
	}

	response.JSON(w, http.StatusOK, note)
}

// AssignCategory handles POST /notes/{id}/categories
func (h *NoteHandler) AssignCategory(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid note id", "")
		return
	}

	var req model.AssignCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.AssignCategory(r.Context(), userID(r), id, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			response.Error(w, http.StatusNotFound, "Note not found", "")
		case errors.Is(err, service.ErrCategoryMissing):
			response.Error(w, http.StatusBadRequest, "Category not found", "")
		default:
			logger.Sugar.Errorf("Error assigning category to note %d: %v", id, err)
			response.Error(w, http.StatusInternalServerError, "Error assigning category to note", err.Error())
		}
		return
	}

	response.JSON(w, http.StatusOK, note)
}

func noteID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(middleware.UserIDKey).(string)
	return id
}
