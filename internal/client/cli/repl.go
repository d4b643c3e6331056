package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Cart(ctx context.Context, args []string) error
	Quantity(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Checkout(ctx context.Context, args []string) error
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Notices(ctx context.Context, args []string) error
	Dismiss(ctx context.Context, args []string) error
}

// errUsage makes the REPL print the usage line of the command.
var errUsage = errors.New("usage")

var usage = map[string]string{
	"products": "products [category]",
	"product":  "product <id>",
	"add":      "add <id> [qty] [variant]",
	"qty":      "qty <line> <n>",
	"remove":   "remove <line>",
	"profile":  "profile <name|email|phone> <value>",
	"dismiss":  "dismiss <id>",
}

// runREPL starts a simple read-eval-print loop for the furnistore CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches the remaining tokens to methods on a. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Commands:
//
//	help                        show available commands
//	products [category]         list the catalog
//	product <id>                show one product
//	add <id> [qty] [variant]    add to cart (qty defaults to 1)
//	cart                        show the cart
//	qty <line> <n>              change a line's quantity
//	remove <line>               remove a line
//	clear                       empty the cart
//	checkout                    place the order (requires login)
//	register | login | logout   account
//	whoami                      show the signed-in identity
//	profile <field> <value>     update name, email or phone
//	notices | dismiss <id>      list or hide notifications
//	exit | quit                 leave the program
//
// Handler errors are printed; errUsage prints the command's usage line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("furnistore %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: products, product, add, cart, qty, remove, clear, checkout, whoami, profile, notices, dismiss, logout, exit")
			} else {
				printlnFn("Available commands: products, product, add, cart, qty, remove, clear, register, login, notices, dismiss, exit")
			}

		case "products", "p":
			cmdErr = a.Products(ctx, args)
		case "product":
			cmdErr = a.Product(ctx, args)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "cart", "c":
			cmdErr = a.Cart(ctx, args)
		case "qty":
			cmdErr = a.Quantity(ctx, args)
		case "remove", "rm":
			cmdErr = a.Remove(ctx, args)
		case "clear":
			cmdErr = a.Clear(ctx, args)
		case "checkout":
			cmdErr = a.Checkout(ctx, args)
		case "register":
			cmdErr = a.Register(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "whoami":
			cmdErr = a.Whoami(ctx, args)
		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "notices":
			cmdErr = a.Notices(ctx, args)
		case "dismiss":
			cmdErr = a.Dismiss(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		switch {
		case errors.Is(cmdErr, errUsage):
			printlnFn("Usage:", usage[cmd])
		case cmdErr != nil:
			printlnFn("Error:", cmdErr.Error())
		}

		if err != nil {
			return
		}
	}
}
