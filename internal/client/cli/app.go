package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/furnistore/internal/client/config"
	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/dmitrijs2005/furnistore/internal/notify"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type App struct {
	sf     *storefront.Storefront
	stores *storefront.Stores
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	mu     sync.Mutex
	seen   map[string]bool
	cancel func()
}

// NewApp opens the storefront described by c and hydrates the stores of the
// configured namespace.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	sf, err := storefront.Open(ctx, c.StorefrontOptions(log))
	if err != nil {
		return nil, err
	}
	return newApp(ctx, sf, c.Namespace, bufio.NewReader(os.Stdin), os.Stdout, log), nil
}

func newApp(ctx context.Context, sf *storefront.Storefront, namespace string, in *bufio.Reader, out io.Writer, log logging.Logger) *App {
	a := &App{
		sf:     sf,
		stores: sf.Stores(ctx, namespace),
		reader: in,
		out:    out,
		log:    log,
		seen:   make(map[string]bool),
	}
	a.cancel = a.stores.Notices.Subscribe(a.onNotices)
	return a
}

// onNotices prints notifications the first time they appear. Expiry only
// shrinks the list, so it prints nothing.
func (a *App) onNotices(list []notify.Notification) {
	a.mu.Lock()
	defer a.mu.Unlock()

	live := make(map[string]bool, len(list))
	for _, n := range list {
		live[n.ID] = true
		if a.seen[n.ID] {
			continue
		}
		fmt.Fprintln(a.out, formatNotice(n))
	}
	a.seen = live
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to furnistore (type 'help' for commands)")
	if n := a.stores.Cart.Count(); n > 0 {
		fmt.Fprintf(a.out, "Your cart still holds %d item(s).\n", n)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close stops notification timers and releases the backend.
func (a *App) Close() {
	a.cancel()
	a.stores.Close()
	if err := a.sf.Close(); err != nil {
		a.log.Warn(context.Background(), "storefront close failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.stores.Session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := "guest"
	if id, ok := a.stores.Session.Identity(); ok {
		s = id.Email
		if id.IsAdmin {
			s += " admin"
		}
	}
	if n := a.stores.Cart.Count(); n > 0 {
		s = fmt.Sprintf("%s, cart %d", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}
