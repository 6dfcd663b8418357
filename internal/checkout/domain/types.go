package domain

type Money struct {
	Currency string
	Amount   int64
}

// LineItem is one priced line sent to the payment provider.
type LineItem struct {
	Quantity    int64
	UnitPrice   Money
	Name        string
	Description string
	Images      []string
}

type SessionRequest struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the hosted payment page handle returned by the provider.
type Session struct {
	ID  string
	URL string
}
