package payment

const (
	ProductCart     = "cart"
	ProductMentoria = "mentoria"
)

// Product is what the checkout page asks to pay for.
type Product struct {
	Kind     string            `json:"kind"`
	Metadata map[string]string `json:"metadata"`
}

type CreateIntentRequest struct {
	Product Product `json:"product"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	IntentID     string `json:"intentId"`
	AmountCents  int64  `json:"amountCents"`
	Currency     string `json:"currency"`
}

// Intent metadata keys.
const (
	metaCartSession = "cart_session"
	metaUserID      = "user_id"
	metaKind        = "kind"
)
