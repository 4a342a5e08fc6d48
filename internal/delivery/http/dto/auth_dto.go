package dto

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response. The client stores the
// token and the user snapshot and sends the token as a Bearer header on
// every authenticated request.
type LoginResponse struct {
	Token string     `json:"token"`
	User  UserOutput `json:"user"`
}

// RegisterRequest represents the registration payload. New accounts start
// pending and wait for admin approval.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	DisplayName string `json:"display_name" validate:"max=128"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=32"`
	Password    string `json:"password" validate:"required,min=6"`
}

// TradeRequest places a market order
type TradeRequest struct {
	Symbol   string  `json:"symbol" validate:"required"`
	Side     string  `json:"side" validate:"required,oneof=BUY SELL"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
}
