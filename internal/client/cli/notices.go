package cli

import (
	"context"
	"fmt"
)

func (a *App) Notices(ctx context.Context, args []string) error {
	list := a.stores.Notices.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}
	for _, n := range list {
		fmt.Fprintf(a.out, "%s  %s\n", n.ID, formatNotice(n))
	}
	return nil
}

func (a *App) Dismiss(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if !a.stores.Notices.Hide(args[0]) {
		fmt.Fprintln(a.out, "No such notification.")
	}
	return nil
}
