package shopmodel

import (
	"encoding/json"
)

type Cart struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// CartLine is one product entry within a cart. Subtotal is computed by the cart service.
type CartLine struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

type Product struct {
	ID         string `json:"id"`
	Barcode    string `json:"barcode"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	IsDonation bool   `json:"is_donation"`
}

// CartView is the server confirmed state of the current cart.
type CartView struct {
	Cart  *Cart      `json:"cart"`
	Lines []CartLine `json:"items"`
}

func (v CartView) Total() int64 {
	total := int64(0)
	for _, line := range v.Lines {
		total += line.Subtotal
	}
	return total
}

func (v CartView) ItemCount() int {
	count := 0
	for _, line := range v.Lines {
		count += line.Quantity
	}
	return count
}

func (v CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

func (v CartView) FindLine(lineID string) (CartLine, bool) {
	for _, line := range v.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return CartLine{}, false
}

func (v CartView) MarshalJSON() ([]byte, error) {
	lines := v.Lines
	if lines == nil {
		lines = []CartLine{}
	}
	return json.Marshal(struct {
		Cart      *Cart      `json:"cart"`
		Lines     []CartLine `json:"items"`
		Total     int64      `json:"total"`
		ItemCount int        `json:"itemCount"`
	}{
		Cart:      v.Cart,
		Lines:     lines,
		Total:     v.Total(),
		ItemCount: v.ItemCount(),
	})
}
