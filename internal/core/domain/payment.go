package domain

// PaymentDetails describes a fee the backend requires before an operation
// may proceed. It arrives on HTTP 402 responses (commitment fees for
// non-members) and on payment-token creation.
type PaymentDetails struct {
	PaymentID   string  `json:"paymentId,omitempty"`
	OrderID     string  `json:"orderId,omitempty"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency,omitempty"`
	Description string  `json:"description,omitempty"`
}

// PaymentToken is the Snap widget token issued by the backend. The browser
// hands it to the payment widget; the portal never holds card data.
type PaymentToken struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}
