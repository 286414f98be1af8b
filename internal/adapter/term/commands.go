package term

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/service"
)

func (sh *Shell) dispatch(ctx context.Context, args []string) {
	switch args[0] {
	case "help":
		sh.printHelp()
	case "login":
		sh.cmdLogin(ctx, args[1:])
	case "signup":
		sh.cmdSignup(ctx, args[1:])
	case "verify":
		sh.cmdVerify(ctx, args[1:])
	case "resend-otp":
		sh.cmdResendOTP(ctx, args[1:])
	case "logout":
		sh.session.Logout(ctx)
		sh.printf("logged out")
	case "whoami":
		sh.cmdWhoami()
	case "products":
		sh.cmdProducts(ctx, args[1:])
	case "categories":
		sh.cmdCategories(ctx)
	case "cart":
		sh.cmdCart(ctx, args[1:])
	case "wishlist":
		sh.cmdWishlist(ctx, args[1:])
	case "addresses":
		sh.cmdAddresses(ctx)
	case "checkout":
		sh.cmdCheckout(ctx, args[1:])
	case "pay":
		sh.cmdPay(ctx, args[1:])
	case "orders":
		sh.cmdOrders(ctx)
	case "order":
		sh.cmdOrder(ctx, args[1:])
	case "track":
		sh.cmdTrack(ctx, args[1:])
	case "admin":
		sh.cmdAdmin(ctx, args[1:])
	case "delivery":
		sh.cmdDelivery(ctx, args[1:])
	default:
		sh.printf("unknown command %q, type 'help'", args[0])
	}
}

func (sh *Shell) requireLogin() bool {
	if sh.session.IsAuthenticated() {
		return true
	}
	sh.printf("please log in first")
	sh.NavigateTo(service.RouteLogin)
	return false
}

func (sh *Shell) requireRole(ctx context.Context, role domain.Role) bool {
	if !sh.requireLogin() {
		return false
	}
	if sh.session.HasRole(role) {
		return true
	}
	sh.printf("you do not have access to this area")
	sh.session.HandleForbidden(ctx)
	return false
}

func (sh *Shell) cmdLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		sh.printf("usage: login <email> <password>")
		return
	}
	user, err := sh.session.Login(ctx, domain.Credentials{
		Email: args[0], Password: args[1],
	})
	if err != nil {
		sh.printErr(err, "Login failed. Please try again.")
		return
	}
	sh.printf("welcome back, %s (%s)", user.Name, user.Role)
	if err := sh.cart.LoadRemote(ctx); err != nil {
		sh.printErr(err, "Failed to load your saved cart.")
	}
	sh.NavigateTo(service.RouteHome)
}

func (sh *Shell) cmdSignup(ctx context.Context, args []string) {
	if len(args) < 3 {
		sh.printf("usage: signup <email> <password> <name...> [phone]")
		return
	}
	data := domain.SignupData{Email: args[0], Password: args[1]}
	rest := args[2:]
	if len(rest) > 1 {
		data.Phone = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	data.Name = strings.Join(rest, " ")

	user, err := sh.session.Signup(ctx, data)
	if err != nil {
		sh.printErr(err, "Signup failed. Please try again.")
		return
	}
	sh.printf("account created for %s, check your email for the OTP", user.Email)
}

func (sh *Shell) cmdVerify(ctx context.Context, args []string) {
	if len(args) != 2 {
		sh.printf("usage: verify <email> <otp>")
		return
	}
	if err := sh.session.VerifyOTP(ctx, args[0], args[1]); err != nil {
		sh.printErr(err, "Verification failed. Please try again.")
		return
	}
	sh.printf("email verified, you can log in now")
}

func (sh *Shell) cmdResendOTP(ctx context.Context, args []string) {
	if len(args) != 1 {
		sh.printf("usage: resend-otp <email>")
		return
	}
	if err := sh.session.ResendOTP(ctx, args[0]); err != nil {
		sh.printErr(err, "Failed to resend the code.")
		return
	}
	sh.printf("a new code is on its way")
}

func (sh *Shell) cmdWhoami() {
	sess, ok := sh.session.Current()
	if !ok {
		sh.printf("not logged in")
		return
	}
	sh.printf("%s <%s> role=%s", sess.User.Name, sess.User.Email, sess.User.Role)
}

func (sh *Shell) cmdProducts(ctx context.Context, args []string) {
	filter := domain.ProductFilter{Search: strings.Join(args, " ")}
	products, err := sh.catalog.Products(ctx, filter)
	if err != nil {
		sh.printErr(err, "Failed to load products.")
		return
	}
	sh.renderProducts(products)
}

func (sh *Shell) cmdCategories(ctx context.Context) {
	categories, err := sh.catalog.Categories(ctx)
	if err != nil {
		sh.printErr(err, "Failed to load categories.")
		return
	}
	sh.renderCategories(categories)
}

// findProduct resolves a product id through the catalog so cart and wishlist
// lines carry full product data, not just the id.
func (sh *Shell) findProduct(ctx context.Context, productID string) (domain.Product, bool) {
	products, err := sh.catalog.Products(ctx, domain.ProductFilter{})
	if err != nil {
		sh.printErr(err, "Failed to load products.")
		return domain.Product{}, false
	}
	for _, p := range products {
		if p.ProductID == productID {
			return p, true
		}
	}
	sh.printf("no product with id %q", productID)
	return domain.Product{}, false
}

func (sh *Shell) cmdCart(ctx context.Context, args []string) {
	if len(args) == 0 {
		sh.renderCart()
		return
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			sh.printf("usage: cart add <productID> [qty]")
			return
		}
		qty := 1
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil || n < 1 {
				sh.printf("quantity must be a positive number")
				return
			}
			qty = n
		}
		p, ok := sh.findProduct(ctx, args[1])
		if !ok {
			return
		}
		if err := sh.cart.Add(ctx, p, qty); err != nil {
			sh.printErr(err, "Failed to add to cart.")
			return
		}
		sh.printf("added %s x%d", p.Name, qty)
	case "qty":
		if len(args) != 3 {
			sh.printf("usage: cart qty <productID> <n>")
			return
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			sh.printf("quantity must be a number")
			return
		}
		if err := sh.cart.UpdateQuantity(ctx, args[1], n); err != nil {
			sh.printErr(err, "Failed to update the cart.")
			return
		}
		sh.renderCart()
	case "rm":
		if len(args) != 2 {
			sh.printf("usage: cart rm <productID>")
			return
		}
		if err := sh.cart.Remove(ctx, args[1]); err != nil {
			sh.printErr(err, "Failed to update the cart.")
			return
		}
		sh.renderCart()
	case "clear":
		if err := sh.cart.Clear(ctx); err != nil {
			sh.printErr(err, "Failed to clear the cart.")
			return
		}
		sh.printf("cart cleared")
	case "pull":
		if !sh.requireLogin() {
			return
		}
		if err := sh.cart.LoadRemote(ctx); err != nil {
			sh.printErr(err, "Failed to load your saved cart.")
			return
		}
		sh.renderCart()
	default:
		sh.printf("usage: cart [add|qty|rm|clear|pull]")
	}
}

func (sh *Shell) cmdWishlist(ctx context.Context, args []string) {
	if len(args) == 0 {
		sh.renderProducts(sh.wishlist.Items())
		return
	}
	switch args[0] {
	case "add":
		if len(args) != 2 {
			sh.printf("usage: wishlist add <productID>")
			return
		}
		p, ok := sh.findProduct(ctx, args[1])
		if !ok {
			return
		}
		if err := sh.wishlist.Add(ctx, p); err != nil {
			sh.printErr(err, "Failed to update the wishlist.")
			return
		}
		sh.printf("%s added to wishlist", p.Name)
	case "rm":
		if len(args) != 2 {
			sh.printf("usage: wishlist rm <productID>")
			return
		}
		if err := sh.wishlist.Remove(ctx, args[1]); err != nil {
			sh.printErr(err, "Failed to update the wishlist.")
			return
		}
		sh.printf("removed")
	case "clear":
		if err := sh.wishlist.Clear(ctx); err != nil {
			sh.printErr(err, "Failed to clear the wishlist.")
			return
		}
		sh.printf("wishlist cleared")
	default:
		sh.printf("usage: wishlist [add|rm|clear]")
	}
}

func (sh *Shell) cmdAddresses(ctx context.Context) {
	if !sh.requireLogin() {
		return
	}
	addrs, err := sh.addresses.Addresses(ctx)
	if err != nil {
		sh.printErr(err, "Failed to load addresses.")
		return
	}
	sh.renderAddresses(addrs)
}

// cmdCheckout submits the whole attempt:
//
//	checkout <cod|card|upi> addr <addressID>
//	checkout <cod|card|upi> new <line1>; <city>; <state>; <postal>
func (sh *Shell) cmdCheckout(ctx context.Context, args []string) {
	if !sh.requireLogin() {
		return
	}
	if len(args) < 2 {
		sh.printf("usage: checkout <cod|card|upi> addr <addressID>")
		sh.printf("       checkout <cod|card|upi> new <line1>; <city>; <state>; <postal>")
		return
	}

	req := service.CheckoutRequest{Method: domain.PaymentMethod(args[0])}
	switch args[1] {
	case "addr":
		if len(args) != 3 {
			sh.printf("usage: checkout <method> addr <addressID>")
			return
		}
		req.SavedAddressID = args[2]
	case "new":
		parts := strings.Split(strings.Join(args[2:], " "), ";")
		if len(parts) != 4 {
			sh.printf("usage: checkout <method> new <line1>; <city>; <state>; <postal>")
			return
		}
		req.NewAddress = domain.Address{
			Line1:      strings.TrimSpace(parts[0]),
			City:       strings.TrimSpace(parts[1]),
			State:      strings.TrimSpace(parts[2]),
			PostalCode: strings.TrimSpace(parts[3]),
		}
	default:
		sh.printf("usage: checkout <method> addr|new ...")
		return
	}

	if err := sh.checkout.Submit(ctx, req); err != nil {
		if msg := sh.checkout.ErrorMessage(); msg != "" {
			sh.printf("checkout failed: %s", msg)
			return
		}
		sh.printErr(err, "Checkout failed. Please try again.")
		return
	}

	switch sh.checkout.State() {
	case service.StateAwaitingPayment:
		switch req.Method {
		case domain.PayCard:
			sh.printf("order placed, awaiting payment")
			sh.printf("enter: pay card <number> <mm> <yyyy> <cvv> <holder name...>")
		case domain.PayUPI:
			sh.printf("order placed, awaiting payment")
			sh.printf("enter: pay upi <id@bank>")
		}
	case service.StateCompleted:
		sh.printf("order placed")
	}
}

func (sh *Shell) cmdPay(ctx context.Context, args []string) {
	if len(args) == 0 {
		sh.printf("usage: pay card|upi|cancel ...")
		return
	}
	switch args[0] {
	case "card":
		if len(args) < 6 {
			sh.printf("usage: pay card <number> <mm> <yyyy> <cvv> <holder name...>")
			return
		}
		details := domain.CardDetails{
			Number:      args[1],
			ExpiryMonth: args[2],
			ExpiryYear:  args[3],
			CVV:         args[4],
			HolderName:  strings.Join(args[5:], " "),
		}
		if err := sh.checkout.SubmitCardPayment(ctx, details); err != nil {
			sh.reportPaymentFailure(sh.checkout.CardForm().Error(), err)
			return
		}
		sh.printf("payment captured")
	case "upi":
		if len(args) != 2 {
			sh.printf("usage: pay upi <id@bank>")
			return
		}
		err := sh.checkout.SubmitUPIPayment(ctx, domain.UPIDetails{UPIID: args[1]})
		if err != nil {
			sh.reportPaymentFailure(sh.checkout.UPIForm().Error(), err)
			return
		}
		sh.printf("payment captured")
	case "cancel":
		if sh.checkout.CancelPayment() {
			sh.printf("payment cancelled, the order stays unpaid")
		} else {
			sh.printf("nothing to cancel right now")
		}
	default:
		sh.printf("usage: pay card|upi|cancel ...")
	}
}

func (sh *Shell) reportPaymentFailure(formMsg string, err error) {
	if errors.Is(err, service.ErrCaptureInProgress) {
		sh.printf("payment already in progress")
		return
	}
	if formMsg != "" {
		sh.printf("payment failed: %s", formMsg)
		return
	}
	sh.printErr(err, "Payment failed. Please try again.")
}

func (sh *Shell) cmdOrders(ctx context.Context) {
	if !sh.requireLogin() {
		return
	}
	orders, err := sh.orders.List(ctx)
	if err != nil {
		sh.printErr(err, "Failed to load your orders.")
		return
	}
	sh.renderOrders(orders)
}

func (sh *Shell) cmdOrder(ctx context.Context, args []string) {
	if !sh.requireLogin() {
		return
	}
	if len(args) == 2 && args[0] == "cancel" {
		if err := sh.orders.Cancel(ctx, args[1]); err != nil {
			sh.printErr(err, "Failed to cancel the order.")
			return
		}
		sh.printf("order %s cancelled", args[1])
		return
	}
	if len(args) != 1 {
		sh.printf("usage: order <id> | order cancel <id>")
		return
	}
	order, err := sh.orders.Get(ctx, args[0])
	if err != nil {
		sh.printErr(err, "Failed to load the order.")
		return
	}
	sh.renderOrderDetail(order)
}

func (sh *Shell) cmdTrack(ctx context.Context, args []string) {
	if !sh.requireLogin() {
		return
	}
	if len(args) != 1 {
		sh.printf("usage: track <orderID>")
		return
	}
	order, err := sh.orders.Get(ctx, args[0])
	if err != nil {
		sh.printErr(err, "Failed to load the order.")
		return
	}
	sh.renderTracking(order)
}

func (sh *Shell) cmdAdmin(ctx context.Context, args []string) {
	if !sh.requireRole(ctx, domain.RoleAdmin) {
		return
	}
	if len(args) == 0 {
		sh.printf("usage: admin stats|orders|advance <orderID>")
		return
	}
	switch args[0] {
	case "stats":
		stats, err := sh.orders.DashboardStats(ctx)
		if err != nil {
			sh.printErr(err, "Failed to load dashboard stats.")
			return
		}
		sh.renderStats(stats)
	case "orders":
		orders, err := sh.orders.AdminList(ctx)
		if err != nil {
			sh.printErr(err, "Failed to load orders.")
			return
		}
		sh.renderOrders(orders)
	case "advance":
		if len(args) != 2 {
			sh.printf("usage: admin advance <orderID>")
			return
		}
		order, ok := sh.findAdminOrder(ctx, args[1])
		if !ok {
			return
		}
		updated, err := sh.orders.Advance(ctx, order)
		if err != nil {
			sh.printErr(err, "Failed to advance the order.")
			return
		}
		sh.printf("order %s is now %s", updated.OrderID, updated.Status)
	default:
		sh.printf("usage: admin stats|orders|advance <orderID>")
	}
}

func (sh *Shell) findAdminOrder(ctx context.Context, orderID string) (domain.Order, bool) {
	orders, err := sh.orders.AdminList(ctx)
	if err != nil {
		sh.printErr(err, "Failed to load orders.")
		return domain.Order{}, false
	}
	for _, o := range orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	sh.printf("no order with id %q", orderID)
	return domain.Order{}, false
}

func (sh *Shell) cmdDelivery(ctx context.Context, args []string) {
	if !sh.requireRole(ctx, domain.RoleDeliveryAgent) {
		return
	}
	if len(args) == 0 {
		assigned, inTransit, pending, err := sh.orders.DeliveryQueues(ctx)
		if err != nil {
			sh.printErr(err, "Failed to load delivery queues.")
			return
		}
		sh.renderDeliveryQueues(assigned, inTransit, pending)
		return
	}
	if len(args) == 2 && args[0] == "advance" {
		order, ok := sh.findDeliveryOrder(ctx, args[1])
		if !ok {
			return
		}
		if err := sh.orders.MarkDelivery(ctx, order); err != nil {
			sh.printErr(err, "Failed to update the delivery.")
			return
		}
		sh.printf("order %s updated", order.OrderID)
		return
	}
	sh.printf("usage: delivery | delivery advance <orderID>")
}

func (sh *Shell) findDeliveryOrder(ctx context.Context, orderID string) (domain.Order, bool) {
	assigned, inTransit, pending, err := sh.orders.DeliveryQueues(ctx)
	if err != nil {
		sh.printErr(err, "Failed to load delivery queues.")
		return domain.Order{}, false
	}
	for _, q := range [][]domain.Order{assigned, inTransit, pending} {
		for _, o := range q {
			if o.OrderID == orderID {
				return o, true
			}
		}
	}
	sh.printf("no order with id %q in your queues", orderID)
	return domain.Order{}, false
}

func (sh *Shell) printHelp() {
	sh.printf(`commands:
  login <email> <password>          signup <email> <password> <name...> [phone]
  verify <email> <otp>              resend-otp <email>
  logout  whoami                    products [keyword]  categories
  cart [add|qty|rm|clear|pull]      wishlist [add|rm|clear]
  addresses                         checkout <cod|card|upi> addr|new ...
  pay card|upi|cancel ...           orders  order <id>  order cancel <id>
  track <orderID>                   admin stats|orders|advance <orderID>
  delivery [advance <orderID>]      exit`)
}
