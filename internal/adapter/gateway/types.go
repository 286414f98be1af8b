package gateway

import (
	"strconv"
	"time"

	"github.com/revcart/storefront/internal/core/domain"
)

// Backend record ids are numeric on the wire; the client keeps them as
// strings.

func idToString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func idFromString(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

type (
	AuthResponse struct {
		Token string  `json:"token"`
		User  UserDTO `json:"user"`
	}

	UserDTO struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Role  string `json:"role"`
	}
)

func (r AuthResponse) toDomain() domain.Session {
	return domain.Session{
		User: domain.User{
			UserID: idToString(r.User.ID),
			Email:  r.User.Email,
			Name:   r.User.Name,
			Phone:  r.User.Phone,
			Role:   domain.RoleFromBackend(r.User.Role),
		},
		Token: r.Token,
	}
}

type (
	CartDTO struct {
		Items []CartItemDTO `json:"items"`
	}

	CartItemDTO struct {
		ProductID         int64   `json:"productId"`
		ProductName       string  `json:"productName"`
		Name              string  `json:"name"`
		Price             float64 `json:"price"`
		Quantity          int     `json:"quantity"`
		ImageURL          string  `json:"imageUrl"`
		Unit              string  `json:"unit"`
		AvailableQuantity int     `json:"availableQuantity"`
	}
)

func (d CartItemDTO) toDomain() domain.CartItem {
	name := d.ProductName
	if name == "" {
		name = d.Name
	}
	unit := d.Unit
	if unit == "" {
		unit = "unit"
	}
	return domain.CartItem{
		ProductID:         idToString(d.ProductID),
		Name:              name,
		Price:             d.Price,
		Quantity:          d.Quantity,
		Image:             d.ImageURL,
		Unit:              unit,
		AvailableQuantity: d.AvailableQuantity,
	}
}

type AddressDTO struct {
	ID             int64  `json:"id,omitempty"`
	Line1          string `json:"line1"`
	Line2          string `json:"line2,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	PrimaryAddress bool   `json:"primaryAddress"`
}

func (d AddressDTO) toDomain() domain.Address {
	return domain.Address{
		AddressID:  idToString(d.ID),
		Line1:      d.Line1,
		Line2:      d.Line2,
		City:       d.City,
		State:      d.State,
		PostalCode: d.PostalCode,
		Country:    d.Country,
		Primary:    d.PrimaryAddress,
	}
}

func addressToDTO(a domain.Address) AddressDTO {
	country := a.Country
	if country == "" {
		country = "India"
	}
	return AddressDTO{
		Line1:          a.Line1,
		Line2:          a.Line2,
		City:           a.City,
		State:          a.State,
		PostalCode:     a.PostalCode,
		Country:        country,
		PrimaryAddress: true,
	}
}

type (
	OrderDTO struct {
		ID              int64          `json:"id"`
		OrderNumber     string         `json:"orderNumber"`
		Status          string         `json:"status"`
		PaymentStatus   string         `json:"paymentStatus"`
		TotalAmount     float64        `json:"totalAmount"`
		CreatedAt       string         `json:"createdAt"`
		ShippingAddress AddressDTO     `json:"shippingAddress"`
		Items           []OrderItemDTO `json:"items"`
	}

	OrderItemDTO struct {
		ProductID   int64   `json:"productId"`
		ProductName string  `json:"productName"`
		Quantity    int     `json:"quantity"`
		UnitPrice   float64 `json:"unitPrice"`
		Subtotal    float64 `json:"subtotal"`
	}
)

func (d OrderDTO) toDomain() domain.Order {
	date := d.CreatedAt
	if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
		date = t.Format("2006-01-02")
	}

	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{
			ProductID: idToString(it.ProductID),
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}

	return domain.Order{
		OrderID:         idToString(d.ID),
		Date:            date,
		Status:          domain.OrderStatusFromBackend(d.Status),
		Items:           items,
		Total:           d.TotalAmount,
		DeliveryAddress: d.ShippingAddress.toDomain().DisplayString(),
	}
}

func ordersToDomain(dtos []OrderDTO) []domain.Order {
	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders
}

type CheckoutResponse struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
}

type PaymentResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"paymentId"`
	Message   string `json:"message"`
}

type (
	ProductDTO struct {
		ID                int64       `json:"id"`
		Name              string      `json:"name"`
		Description       string      `json:"description"`
		Price             float64     `json:"price"`
		ImageURL          string      `json:"imageUrl"`
		Unit              string      `json:"unit"`
		Active            bool        `json:"active"`
		Category          CategoryDTO `json:"category"`
		StockQuantity     int         `json:"stockQuantity"`
		AvailableQuantity int         `json:"availableQuantity"`
	}

	CategoryDTO struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
	}
)

func (d ProductDTO) toDomain() domain.Product {
	unit := d.Unit
	if unit == "" {
		unit = "unit"
	}
	return domain.Product{
		ProductID:         idToString(d.ID),
		Name:              d.Name,
		Description:       d.Description,
		Price:             d.Price,
		CategoryID:        idToString(d.Category.ID),
		CategoryName:      d.Category.Name,
		Image:             d.ImageURL,
		Unit:              unit,
		InStock:           d.AvailableQuantity > 0,
		AvailableQuantity: d.AvailableQuantity,
	}
}

func (d CategoryDTO) toDomain() domain.Category {
	return domain.Category{
		CategoryID:  idToString(d.ID),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Image:       d.ImageURL,
	}
}

type StatsDTO struct {
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalProducts int     `json:"totalProducts"`
	ActiveUsers   int     `json:"activeUsers"`
	InStock       int     `json:"inStock"`
}
