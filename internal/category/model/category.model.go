package model

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}
