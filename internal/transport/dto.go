package transport

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type IsModeratorResponse struct {
	IsModerator bool `json:"isModerator"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

type UpsertProductRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type CreateOrderRequest struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
}

type CreateIntentRequest struct {
	Price float64 `json:"price"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type ConfirmPaymentRequest struct {
	OrderID       string  `json:"orderId"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId"`
}
