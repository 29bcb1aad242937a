package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"flowboard/internal/model"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret"`
}

// UpdateProfileRequest is the body of PUT /auth/update. Empty fields are ignored.
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type BoardRequest struct {
	Name string `json:"name" binding:"notblank" example:"Home"`
}

type TaskRequest struct {
	Title   string       `json:"title" binding:"notblank" example:"Buy milk"`
	Label   string       `json:"label,omitempty" binding:"omitempty,oneof=work personal urgent" enums:"work,personal,urgent"`
	DueDate OptionalTime `json:"dueDate,omitempty" swaggertype:"string" format:"date-time"`
	Status  string       `json:"status,omitempty" binding:"omitempty,oneof=todo inprogress done" enums:"todo,inprogress,done"`
	BoardID string       `json:"boardId,omitempty" binding:"omitempty,uuid"`
}

// TaskUpdateRequest is a partial update; absent fields keep their value and
// an explicit null dueDate clears it.
type TaskUpdateRequest struct {
	Title   *string      `json:"title,omitempty"`
	Label   *string      `json:"label,omitempty" binding:"omitempty,oneof=work personal urgent" enums:"work,personal,urgent"`
	DueDate OptionalTime `json:"dueDate,omitempty" swaggertype:"string" format:"date-time"`
	Status  *string      `json:"status,omitempty" binding:"omitempty,oneof=todo inprogress done" enums:"todo,inprogress,done"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type BoardResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TaskResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Label     string     `json:"label"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Status    string     `json:"status"`
	BoardID   *string    `json:"boardId,omitempty"`
	OwnerID   string     `json:"ownerId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

var errInvalidDueDate = errors.New("invalid dueDate")

// Zone-less layouts are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// OptionalTime remembers whether the field was present at all, so that
// null can be told apart from absent. Dates without a time are accepted.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Time = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errInvalidDueDate
	}
	if raw == "" {
		o.Time = nil
		return nil
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			o.Time = &t
			return nil
		}
	}
	return errInvalidDueDate
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Username: u.Username, Email: u.Email}
}

func newBoardResponse(b *model.Board) BoardResponse {
	return BoardResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		OwnerID:   b.OwnerID.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func newTaskResponse(t *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID.String(),
		Title:     t.Title,
		Label:     string(t.Label),
		DueDate:   t.DueDate,
		Status:    string(t.Status),
		OwnerID:   t.OwnerID.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.BoardID != nil {
		boardID := t.BoardID.String()
		resp.BoardID = &boardID
	}
	return resp
}
