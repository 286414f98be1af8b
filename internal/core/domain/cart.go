package domain

// CartItem is a single cart line. At most one CartItem exists per ProductID.
type CartItem struct {
	ProductID         string
	Name              string
	Price             float64
	Quantity          int
	Image             string
	Unit              string
	AvailableQuantity int
}

// CartItemFromProduct makes a cart line for a product with the given quantity.
func CartItemFromProduct(p Product, qty int) CartItem {
	return CartItem{
		ProductID:         p.ProductID,
		Name:              p.Name,
		Price:             p.Price,
		Quantity:          qty,
		Image:             p.Image,
		Unit:              p.Unit,
		AvailableQuantity: p.AvailableQuantity,
	}
}

// CartTotal is the sum of price times quantity over the given lines.
func CartTotal(items []CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// CartItemCount is the sum of quantities over the given lines.
func CartItemCount(items []CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
