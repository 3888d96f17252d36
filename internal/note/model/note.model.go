package model

// NoteRequest is the body for both create and update: updates are full
// replacements, there is no partial patch.
type NoteRequest struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Status     bool   `json:"status"`
	CategoryID *int64 `json:"categoryId"`
}

type AssignCategoryRequest struct {
	CategoryID int64 `json:"categoryId" validate:"required"`
}
