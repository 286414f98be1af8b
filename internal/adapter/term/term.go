// Package term is the inbound adapter: a line-oriented shell that drives the
// storefront services and doubles as the navigation target for flow outcomes.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/revcart/storefront/internal/core/port"
	"github.com/revcart/storefront/internal/core/service"
)

var _ port.Navigator = (*Shell)(nil)

type Shell struct {
	in  io.Reader
	out io.Writer

	mu    sync.Mutex
	route string

	session   *service.Session
	cart      *service.Cart
	wishlist  *service.Wishlist
	checkout  *service.Checkout
	orders    service.Orders
	catalog   port.CatalogGateway
	addresses port.AddressGateway
}

type Services struct {
	Session   *service.Session
	Cart      *service.Cart
	Wishlist  *service.Wishlist
	Checkout  *service.Checkout
	Orders    service.Orders
	Catalog   port.CatalogGateway
	Addresses port.AddressGateway
}

// NewShell builds the shell without its services so it can serve as the
// Navigator while they are constructed. Call Use before Run.
func NewShell(in io.Reader, out io.Writer) *Shell {
	return &Shell{in: in, out: out, route: service.RouteHome}
}

// Use installs the services the command handlers drive.
func (sh *Shell) Use(s Services) {
	sh.session = s.Session
	sh.cart = s.Cart
	sh.wishlist = s.Wishlist
	sh.checkout = s.Checkout
	sh.orders = s.Orders
	sh.catalog = s.Catalog
	sh.addresses = s.Addresses
}

// NavigateTo switches the visible view. Services call it after flow outcomes,
// so it may run concurrently with the read loop.
func (sh *Shell) NavigateTo(route string) {
	sh.mu.Lock()
	sh.route = route
	sh.mu.Unlock()
	fmt.Fprintf(sh.out, "view: %s\n", route)
}

func (sh *Shell) Route() string {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.route
}

// Run reads commands until EOF, the exit command or context cancellation,
// then calls stopFn.
func (sh *Shell) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "Shell.Run"
	log := slog.With("op", op)

	defer stopFn()

	sh.printf("RevCart storefront. Type 'help' for commands.")

	sc := bufio.NewScanner(sh.in)
	for {
		fmt.Fprintf(sh.out, "%s> ", sh.Route())
		if !sc.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		sh.dispatch(ctx, strings.Fields(line))
	}

	if err := sc.Err(); err != nil {
		log.Error("read loop stopped", "err", err)
	}
	log.Info("shell is closed")
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format+"\n", args...)
}

func (sh *Shell) printErr(err error, fallback string) {
	sh.printf("error: %s", port.UserMessage(err, fallback))
}
