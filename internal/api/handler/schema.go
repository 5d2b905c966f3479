package handler

import (
	"time"

	"github.com/thehex/board/internal/core/domain"
)

// --- Request types ---

type signupRequest struct {
	FirstName       string `json:"first_name"       validate:"max=100"`
	LastName        string `json:"last_name"        validate:"max=100"`
	Email           string `json:"email"            validate:"omitempty,email,max=254"`
	Password        string `json:"password"         validate:"max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"max=72"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createMessageRequest struct {
	Title   string `json:"title"   validate:"max=200"`
	Content string `json:"content" validate:"max=5000"`
}

type membershipRequest struct {
	Passcode string `json:"passcode"`
}

// --- Response types ---

type accountResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsMember  bool      `json:"is_member"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   accountResponse `json:"account"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type feedResponse struct {
	ViewerIsMember bool                 `json:"viewer_is_member"`
	Mode           string               `json:"mode"`
	Messages       []domain.MessageView `json:"messages"`
}

type membershipResponse struct {
	Message string          `json:"message"`
	Account accountResponse `json:"account"`
}

type activityListResponse struct {
	Items []domain.Activity `json:"items"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		IsMember:  a.IsMember,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
	}
}
