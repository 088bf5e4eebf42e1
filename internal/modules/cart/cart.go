package cart

import (
	"errors"
	"slices"
	"strings"
)

type Kind string

const (
	KindCurso       Kind = "curso"
	KindMentoria    Kind = "mentoria"
	KindServicio    Kind = "servicio"
	KindDiagnostico Kind = "diagnostico"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindCurso, KindMentoria, KindServicio, KindDiagnostico:
		return true
	}
	return false
}

const (
	MaxQuantity   = 99
	MaxPriceCents = 100_000_000
)

var (
	ErrInvalidItem   = errors.New("invalid cart item")
	ErrQuantityLimit = errors.New("cart line quantity limit exceeded")
	// ErrReservedKind rejects mentoria lines outside the booking flow, which
	// prices them and checks the slot.
	ErrReservedKind = errors.New("mentoria lines are added through /bookings/cart")
)

// Item is one cart line. Prices are integer minor units.
type Item struct {
	ID         string            `json:"id"`
	Kind       Kind              `json:"kind"`
	Title      string            `json:"title"`
	PriceCents int64             `json:"priceCents"`
	Quantity   int               `json:"quantity"`
	Image      string            `json:"image,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
}

func (it Item) clone() Item {
	if it.Meta != nil {
		meta := make(map[string]string, len(it.Meta))
		for k, v := range it.Meta {
			meta[k] = v
		}
		it.Meta = meta
	}
	return it
}

type State string

const (
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)

// Cart holds line items in insertion order plus the entered discount code.
// The zero value is an empty cart.
type Cart struct {
	items        []Item
	discountCode string
}

// AddItem adds quantity of item. An existing id has its quantity increased;
// a new line starts at max(1, quantity). No line may exceed MaxQuantity.
func (c *Cart) AddItem(item Item, quantity int) (Item, error) {
	if strings.TrimSpace(item.ID) == "" || !item.Kind.IsValid() || item.PriceCents < 0 || item.PriceCents > MaxPriceCents {
		return Item{}, ErrInvalidItem
	}
	qty := max(1, quantity)
	if qty > MaxQuantity {
		return Item{}, ErrQuantityLimit
	}

	if i := c.index(item.ID); i >= 0 {
		if c.items[i].Quantity > MaxQuantity-qty {
			return Item{}, ErrQuantityLimit
		}
		c.items[i].Quantity += qty
		return c.items[i].clone(), nil
	}

	line := item.clone()
	line.Quantity = qty
	c.items = append(c.items, line)
	return line.clone(), nil
}

// RemoveItem deletes the line with id. It reports whether a line was removed.
func (c *Cart) RemoveItem(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// UpdateQuantity sets the quantity of id. Zero or negative removes the line.
// It reports whether the line exists.
func (c *Cart) UpdateQuantity(id string, quantity int) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	if quantity > MaxQuantity {
		return true, ErrQuantityLimit
	}
	if quantity <= 0 {
		c.items = slices.Delete(c.items, i, i+1)
		return true, nil
	}
	c.items[i].Quantity = quantity
	return true, nil
}

func (c *Cart) Clear() {
	c.items = nil
}

// SetDiscountCode stores code verbatim; matching happens in Totals.
func (c *Cart) SetDiscountCode(code string) {
	c.discountCode = code
}

func (c *Cart) DiscountCode() string { return c.discountCode }

// Item returns a copy of the line with id.
func (c *Cart) Item(id string) (Item, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i].clone(), true
	}
	return Item{}, false
}

// Items returns a copy of the lines.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.clone())
	}
	return out
}

func (c *Cart) State() State {
	if len(c.items) == 0 {
		return StateEmpty
	}
	return StatePopulated
}

// Totals derives the amounts for the current lines. discountLiteral is the
// coupon code that unlocks the discount.
func (c *Cart) Totals(discountLiteral string) Totals {
	return ComputeTotals(c.items, c.discountCode, discountLiteral)
}

func (c *Cart) clone() Cart {
	return Cart{items: c.Items(), discountCode: c.discountCode}
}

func (c *Cart) index(id string) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == id })
}
