package store

import "time"

type Note struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Status       bool      `json:"status"` // true = active, false = archived
	CategoryID   *int64    `json:"category_id"`
	CategoryName *string   `json:"category_name,omitempty"` // filled by list queries via the categories left join
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
}
