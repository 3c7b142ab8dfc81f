package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/online-store/internal/models"
	"github.com/Lixing-Zhang/online-store/internal/storefront"
	"github.com/shopspring/decimal"
)

const helpText = `Commands:
  list                                   show products
  search <text>                          filter by name (empty clears)
  filter category=<c> instock=<bool> sort=<default|price-asc|price-desc|rating>
  reset                                  clear search and filters
  theme [light|dark]                     switch or toggle theme
  categories                             list categories
  add <id>                               add one unit to the cart
  qty <id> <n>                           set quantity (0 removes)
  remove <id>                            remove from the cart
  cart                                   show the cart
  checkout                               place the order
  new                                    create a product
  edit <id>                              edit a product
  delete <id>                            delete a product
  help                                   show this help
  quit                                   exit`

// shell is a line-oriented front end over a storefront.Page.
// It also serves as the page's Alerter and Confirmer.
type shell struct {
	page *storefront.Page
	in   *bufio.Scanner
	out  io.Writer

	// set by run; ask reads lines from here until done closes
	lines <-chan string
	done  <-chan struct{}
}

func newShell(in io.Reader, out io.Writer) *shell {
	return &shell{in: bufio.NewScanner(in), out: out}
}

func (s *shell) Alert(message string) {
	fmt.Fprintf(s.out, "! %s\n", message)
}

func (s *shell) Confirm(message string) bool {
	answer, ok := s.ask(message + " [y/N]: ")
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// run reads commands until quit, end of input or ctx is cancelled.
// Cancellation returns ctx.Err() even while a prompt is waiting for input.
func (s *shell) run(ctx context.Context) error {
	lines := make(chan string)
	var scanErr error
	go func() {
		defer close(lines)
		for s.in.Scan() {
			select {
			case lines <- s.in.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr = s.in.Err()
	}()
	s.lines, s.done = lines, ctx.Done()

	s.page.Load(ctx)
	s.printProducts()

	for {
		line, ok := s.ask("> ")
		if err := ctx.Err(); err != nil {
			return err
		}
		if !ok {
			return scanErr
		}
		if quit := s.exec(ctx, line); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit
func (s *shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch strings.ToLower(cmd) {
	case "":
	case "list", "ls":
		s.printProducts()
	case "search":
		s.page.SetSearchQuery(rest)
		s.printProducts()
	case "filter":
		s.filter(ctx, args)
	case "reset":
		s.page.SetSearchQuery("")
		s.page.ResetFilters(ctx)
		s.printProducts()
	case "theme":
		s.theme(args)
	case "categories":
		s.printCategories()
	case "add":
		s.add(args)
	case "qty":
		s.quantity(args)
	case "remove", "rm":
		if s.requireID(args) {
			s.page.RemoveFromCart(args[0])
			s.printCart()
		}
	case "cart":
		s.page.OpenCart()
		s.printCart()
	case "checkout":
		_ = s.page.Checkout()
	case "new":
		s.page.OpenCreate()
		s.submit(ctx)
	case "edit":
		s.edit(ctx, args)
	case "delete", "del":
		s.delete(ctx, args)
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q, type help\n", cmd)
	}
	return false
}

func (s *shell) filter(ctx context.Context, args []string) {
	filters := s.page.Filters()

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(s.out, "expected key=value, got %q\n", arg)
			return
		}
		switch strings.ToLower(key) {
		case "category":
			filters.Category = value
		case "instock":
			inStock, err := strconv.ParseBool(value)
			if err != nil {
				fmt.Fprintf(s.out, "instock must be true or false\n")
				return
			}
			filters.InStock = inStock
		case "sort":
			mode, err := storefront.ParseSortMode(value)
			if err != nil {
				fmt.Fprintln(s.out, err)
				return
			}
			filters.SortBy = mode
		default:
			fmt.Fprintf(s.out, "unknown filter %q\n", key)
			return
		}
	}

	s.page.SetFilters(ctx, filters)
	s.printProducts()
}

func (s *shell) theme(args []string) {
	if len(args) == 0 {
		s.page.ToggleTheme()
	} else {
		theme, err := storefront.ParseTheme(args[0])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		_ = s.page.SetTheme(theme)
	}
	fmt.Fprintf(s.out, "theme: %s\n", s.page.Theme())
}

func (s *shell) add(args []string) {
	product, ok := s.product(args)
	if !ok {
		return
	}
	if err := s.page.AddToCart(product); err != nil {
		fmt.Fprintf(s.out, "cannot add %s: %v\n", product.Name, err)
		return
	}
	s.printCart()
}

func (s *shell) quantity(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: qty <id> <n>")
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(s.out, "quantity must be a whole number")
		return
	}
	s.page.UpdateCartQuantity(args[0], n)
	s.printCart()
}

func (s *shell) edit(ctx context.Context, args []string) {
	product, ok := s.product(args)
	if !ok {
		return
	}
	s.page.OpenEdit(product)
	s.submit(ctx)
}

// submit prompts for each form field, prefilled from the modal's product
func (s *shell) submit(ctx context.Context) {
	defer s.page.CloseModal()

	form := s.page.Form()
	fields := []struct {
		label string
		value *string
	}{
		{"Name", &form.Name},
		{"Category", &form.Category},
		{"Description", &form.Description},
		{"Price", &form.Price},
		{"Stock", &form.Stock},
		{"Rating", &form.Rating},
	}

	for _, f := range fields {
		prompt := f.label + ": "
		if *f.value != "" {
			prompt = fmt.Sprintf("%s [%s]: ", f.label, *f.value)
		}
		answer, ok := s.ask(prompt)
		if !ok {
			return
		}
		if answer != "" {
			*f.value = answer
		}
	}

	saved, err := s.page.Submit(ctx, form)
	if err != nil {
		return
	}
	fmt.Fprintf(s.out, "saved %s (%s)\n", saved.Name, saved.ID)
}

func (s *shell) delete(ctx context.Context, args []string) {
	if !s.requireID(args) {
		return
	}
	deleted, err := s.page.Delete(ctx, args[0])
	switch {
	case err != nil:
		// the page has already alerted
	case deleted:
		fmt.Fprintf(s.out, "deleted %s\n", args[0])
	default:
		fmt.Fprintln(s.out, "cancelled")
	}
}

func (s *shell) product(args []string) (models.Product, bool) {
	if !s.requireID(args) {
		return models.Product{}, false
	}
	product, ok := s.page.FindProduct(args[0])
	if !ok {
		fmt.Fprintf(s.out, "no product with id %q\n", args[0])
	}
	return product, ok
}

func (s *shell) requireID(args []string) bool {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "missing product id")
		return false
	}
	return true
}

func (s *shell) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	case <-s.done:
		return "", false
	}
}

func (s *shell) printProducts() {
	if s.page.Loading() {
		fmt.Fprintln(s.out, "Loading...")
		return
	}

	filters := s.page.Filters()
	fmt.Fprintf(s.out, "%s Catalog [theme: %s, category: %s, in stock: %t, sort: %s]\n",
		s.rule(), s.page.Theme(), orAll(filters.Category), filters.InStock, filters.SortBy)

	products := s.page.VisibleProducts()
	if len(products) == 0 {
		fmt.Fprintln(s.out, "No products found")
		return
	}

	for _, product := range products {
		card := storefront.NewCard(product)
		fmt.Fprintf(s.out, "%-10s %-28s %10s  %s  %s\n",
			product.ID, product.Name, price(product.Price), card.Stars, strings.Join(card.Badges, ", "))
		fmt.Fprintf(s.out, "%-10s %-28s %10s/mo × 24  stock %d\n",
			"", product.Category, card.Installment.String(), product.Stock)
	}
}

func (s *shell) printCategories() {
	categories := s.page.Categories()
	if len(categories) == 0 {
		fmt.Fprintln(s.out, "No categories")
		return
	}
	for _, c := range categories {
		fmt.Fprintln(s.out, c)
	}
}

func (s *shell) printCart() {
	cart := s.page.Cart()
	fmt.Fprintf(s.out, "%s Cart (%d)\n", s.rule(), cart.Units())
	if cart.Len() == 0 {
		fmt.Fprintln(s.out, "Cart is empty")
		return
	}
	for _, item := range cart.Items() {
		fmt.Fprintf(s.out, "%-10s %-28s %3d × %10s = %s\n",
			item.ID, item.Name, item.Quantity, price(item.Price), item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(s.out, "Total: %s\n", cart.Total().StringFixed(2))
}

func (s *shell) rule() string {
	if s.page.Theme() == storefront.ThemeLight {
		return "--"
	}
	return "=="
}

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func orAll(category string) string {
	if category == "" {
		return "all"
	}
	return category
}
