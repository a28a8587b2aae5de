package types

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for an email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VoteRequest carries a community vote on a recipe.
type VoteRequest struct {
	Vote string `json:"vote" binding:"required"`
}

// PlatingImageRequest asks for a plating photo of a generated recipe.
type PlatingImageRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Plating     string `json:"plating"`
}
