package term

import (
	"fmt"
	"text/tabwriter"

	"github.com/revcart/storefront/internal/core/domain"
)

func (sh *Shell) table(write func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	write(w)
	w.Flush()
}

func (sh *Shell) renderProducts(products []domain.Product) {
	if len(products) == 0 {
		sh.printf("no products")
		return
	}
	sh.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tUNIT\tSTOCK")
		for _, p := range products {
			stock := "out of stock"
			if p.InStock {
				stock = fmt.Sprintf("%d", p.AvailableQuantity)
			}
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
				p.ProductID, p.Name, p.Price, p.Unit, stock)
		}
	})
}

func (sh *Shell) renderCategories(categories []domain.Category) {
	if len(categories) == 0 {
		sh.printf("no categories")
		return
	}
	sh.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.CategoryID, c.Name, c.Description)
		}
	})
}

func (sh *Shell) renderCart() {
	items := sh.cart.Items()
	if len(items) == 0 {
		sh.printf("your cart is empty")
		return
	}
	sh.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tLINE")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n",
				it.ProductID, it.Name, it.Quantity, it.Price,
				it.Price*float64(it.Quantity))
		}
	})
	sh.printf("%d items, total %.2f", sh.cart.ItemCount(), sh.cart.Total())
}

func (sh *Shell) renderAddresses(addrs []domain.Address) {
	if len(addrs) == 0 {
		sh.printf("no saved addresses")
		return
	}
	sh.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tADDRESS\tPRIMARY")
		for _, a := range addrs {
			fmt.Fprintf(w, "%s\t%s\t%v\n", a.AddressID, a.DisplayString(), a.Primary)
		}
	})
}

func (sh *Shell) renderOrders(orders []domain.Order) {
	if len(orders) == 0 {
		sh.printf("no orders")
		return
	}
	sh.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tDATE\tSTATUS\tITEMS\tTOTAL")
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n",
				o.OrderID, o.Date, o.Status, len(o.Items), o.Total)
		}
	})
}

func (sh *Shell) renderOrderDetail(o domain.Order) {
	sh.printf("order %s placed %s, status %s", o.OrderID, o.Date, o.Status)
	sh.printf("deliver to: %s", o.DeliveryAddress)
	sh.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE")
		for _, it := range o.Items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n",
				it.ProductID, it.Name, it.Quantity, it.Price)
		}
	})
	sh.printf("total %.2f", o.Total)
}

// renderTracking shows the shopper progress bar: each display status up to and
// including the current one is marked done. Cancelled orders collapse to a
// single line.
func (sh *Shell) renderTracking(o domain.Order) {
	if o.Status == domain.OrderCancelled {
		sh.printf("order %s was cancelled", o.OrderID)
		return
	}
	steps := []domain.OrderStatus{
		domain.OrderProcessing,
		domain.OrderPacked,
		domain.OrderInTransit,
		domain.OrderDelivered,
	}
	reached := true
	for _, step := range steps {
		mark := " "
		if reached {
			mark = "x"
		}
		sh.printf("[%s] %s", mark, step)
		if step == o.Status {
			reached = false
		}
	}
}

func (sh *Shell) renderStats(s domain.DashboardStats) {
	sh.table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "orders\t%d\n", s.TotalOrders)
		fmt.Fprintf(w, "revenue\t%.2f\n", s.TotalRevenue)
		fmt.Fprintf(w, "products\t%d\n", s.TotalProducts)
		fmt.Fprintf(w, "active users\t%d\n", s.ActiveUsers)
		fmt.Fprintf(w, "in stock\t%d\n", s.InStock)
	})
}

func (sh *Shell) renderDeliveryQueues(assigned, inTransit, pending []domain.Order) {
	sh.printf("assigned:")
	sh.renderOrders(assigned)
	sh.printf("in transit:")
	sh.renderOrders(inTransit)
	sh.printf("pending:")
	sh.renderOrders(pending)
}
