package cart

import (
	"encoding/json"

	"swiftcart/internal/catalog"
)

// Entry is one cart line: a snapshot of the product at add time plus a
// quantity. Price or title changes upstream never propagate into it.
type Entry struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Cart is an insertion-ordered sequence of entries, at most one per
// product id. The zero value is an empty cart.
type Cart []Entry

// Add increments the entry for p by one, appending a new entry with
// quantity 1 when the product is not in the cart yet.
func (c *Cart) Add(p catalog.Product) {
	for i := range *c {
		if (*c)[i].ID == p.ID {
			(*c)[i].Quantity++
			return
		}
	}
	*c = append(*c, Entry{Product: p, Quantity: 1})
}

// Remove drops the entry with the given product id. Absent id is a no-op.
func (c *Cart) Remove(id int) {
	for i := range *c {
		if (*c)[i].ID == id {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return
		}
	}
}

// AdjustQuantity adds delta to the entry's quantity. A result of zero or
// less removes the entry; an absent id is a no-op.
func (c *Cart) AdjustQuantity(id, delta int) {
	for i := range *c {
		if (*c)[i].ID != id {
			continue
		}
		if (*c)[i].Quantity+delta <= 0 {
			c.Remove(id)
			return
		}
		(*c)[i].Quantity += delta
		return
	}
}

// Total is the sum of price times quantity across all entries.
func (c Cart) Total() float64 {
	var total float64
	for _, e := range c {
		total += e.Price * float64(e.Quantity)
	}
	return total
}

// Count is the sum of quantities, not the number of entries.
func (c Cart) Count() int {
	var n int
	for _, e := range c {
		n += e.Quantity
	}
	return n
}

func encode(c Cart) []byte {
	if c == nil {
		c = Cart{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// decode turns a persisted payload back into a cart. Absent or malformed
// data yields an empty cart, never an error.
func decode(raw []byte) Cart {
	if len(raw) == 0 {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil || c == nil {
		return Cart{}
	}
	return c
}
