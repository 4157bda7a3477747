package models

import "encoding/json"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"username"`
	Email string `json:"email"`
}

// SaveRotationRequest carries a rotation draft: the name and the opaque
// {actions: [...]} document.
type SaveRotationRequest struct {
	Name string          `json:"name" binding:"required"`
	Data json.RawMessage `json:"data" binding:"required"`
}

// PromptRequest is the body of both the sync and async AI endpoints.
type PromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}
