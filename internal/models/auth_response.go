package models

// TokenPair holds an access/refresh token pair
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string    `json:"message"`
	Email   string    `json:"email"`
	Tokens  TokenPair `json:"tokens"`
}

// RefreshResponse represents the response after refreshing an access token
type RefreshResponse struct {
	Access string `json:"access"`
}
