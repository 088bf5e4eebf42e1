package cart

// Snapshot is the read model sent to clients after every change.
type Snapshot struct {
	Items        []Item `json:"items"`
	DiscountCode string `json:"discountCode"`
	Totals       Totals `json:"totals"`
	State        State  `json:"state"`
	Count        int    `json:"count"`
}

func snapshotOf(c *Cart, literal string) Snapshot {
	items := c.Items()
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return Snapshot{
		Items:        items,
		DiscountCode: c.DiscountCode(),
		Totals:       c.Totals(literal),
		State:        c.State(),
		Count:        count,
	}
}
