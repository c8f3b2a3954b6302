// OttoMenu: a terminal restaurant ordering assistant.
//
// Usage:
//
//	ottomenu [-verbose] [-quiet] [-confirm-delay 2s] [-consumable] [-two-step]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/ottomenu/internal/cart"
	"github.com/hammamikhairi/ottomenu/internal/catalog"
	"github.com/hammamikhairi/ottomenu/internal/config"
	"github.com/hammamikhairi/ottomenu/internal/conversation"
	"github.com/hammamikhairi/ottomenu/internal/display"
	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
	"github.com/hammamikhairi/ottomenu/internal/order"
	"github.com/hammamikhairi/ottomenu/internal/session"
	"github.com/hammamikhairi/ottomenu/internal/storage"
	"github.com/hammamikhairi/ottomenu/internal/timer"
)

func main() {
	envFile := flag.String("env-file", config.DefaultEnvFile, "dotenv file to read settings from")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	confirmDelay := flag.Duration("confirm-delay", 0, "how long order confirmation takes")
	consumable := flag.Bool("consumable", false, "remove a preset from the menu once it is ordered")
	twoStep := flag.Bool("two-step", false, "save custom dishes to a list before adding them to the cart")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "verbose":
			if *verbose {
				cfg.LogLevel = logger.LevelVerbose
			}
		case "log-file":
			cfg.LogFile = *logFile
		case "confirm-delay":
			cfg.ConfirmDelay = *confirmDelay
		case "consumable":
			cfg.ConsumablePresets = *consumable
		case "two-step":
			cfg.TwoStepCustoms = *twoStep
		}
	})
	if *quiet {
		cfg.LogLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the prompt stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (falling back to stderr)\n", err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(cfg.LogLevel, logOut)
	log.Info("starting (confirm-delay=%s, consumable=%t, two-step=%t)", cfg.ConfirmDelay, cfg.ConsumablePresets, cfg.TwoStepCustoms)

	// Set up context, cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	var opts []cart.Option
	if cfg.ConsumablePresets {
		opts = append(opts, cart.WithConsumablePresets())
	}
	if cfg.TwoStepCustoms {
		opts = append(opts, cart.WithTwoStepCustoms())
	}

	menu := catalog.NewMemorySource(log.Named("catalog"))
	store, err := cart.NewFromSource(ctx, menu, log.Named("cart"), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var sess *session.Session
	ui := display.NewUI(func() display.Status {
		v := sess.View()
		return display.Status{
			CartSize: v.CartSize,
			Shown:    len(v.Selection),
			Total:    v.Total,
			Order:    v.OrderState,
			Filter:   v.Filter,
		}
	})

	notifier := conversation.NewCLINotifier(log, ui.Printf)
	scheduler := timer.New(log.Named("timer"))
	receipts := storage.NewMemoryStore(log.Named("receipts"))
	confirmer := order.New(scheduler, receipts, notifier, log.Named("order"),
		order.WithConfirmDelay(cfg.ConfirmDelay),
	)
	sess = session.New(store, confirmer, log.Named("session"))

	scheduler.Start(ctx)
	defer scheduler.Stop()
	defer sess.Close()

	app := &cliApp{
		sess:     sess,
		receipts: receipts,
		parser:   conversation.NewKeywordParser(log),
		notifier: notifier,
		twoStep:  cfg.TwoStepCustoms,
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type cliApp struct {
	sess     *session.Session
	receipts domain.ReceiptStore
	parser   domain.IntentParser
	notifier domain.Notifier
	twoStep  bool
	log      *logger.Logger
	ui       *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintChat(conversation.LineWelcome())
	a.ui.Println("")
	a.showMenu()

	uiCh := a.ui.InputChan()
	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (payload=%q, field=%q)", intent.Type, intent.Payload, intent.Field)
		if a.handleIntent(ctx, intent) {
			return
		}
	}
}

// handleIntent dispatches one command. It reports whether the app should exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentShowMenu:
		a.showMenu()
	case domain.IntentAddPreset:
		a.addPreset(intent.Payload)
	case domain.IntentAddCustom:
		a.addCustom(intent.Payload)
	case domain.IntentUnlist:
		a.unlist(intent.Payload)
	case domain.IntentSetField:
		a.setField(intent.Field, intent.Payload)
	case domain.IntentSubmitDraft:
		a.submitDraft(ctx)
	case domain.IntentShowCustoms:
		a.showCustoms()
	case domain.IntentShowCart:
		a.showCart()
	case domain.IntentRemove:
		a.remove(intent.Payload)
	case domain.IntentClear:
		a.clear()
	case domain.IntentFilter:
		a.filter(intent.Payload, intent.Field)
	case domain.IntentUnfilter:
		a.filter("", "")
	case domain.IntentTotal:
		a.showTotal()
	case domain.IntentConfirm:
		a.confirm(ctx)
	case domain.IntentPurchase:
		a.purchase(ctx)
	case domain.IntentNewOrder:
		a.newOrder()
	case domain.IntentQuit:
		a.ui.PrintChat(conversation.LineBye())
		// Brief pause so the goodbye renders before teardown.
		time.Sleep(200 * time.Millisecond)
		return true
	default:
		a.ui.PrintChat(conversation.LineUnknown(intent.Payload))
	}
	return false
}

// ── Menu and cart ────────────────────────────────────────────────

func (a *cliApp) showMenu() {
	v := a.sess.View()
	if len(v.Catalog) == 0 {
		a.ui.PrintHint("The menu is empty.")
		return
	}
	a.ui.PrintHeading("Menu:")
	for i, item := range v.Catalog {
		a.ui.PrintItem(fmt.Sprintf("[%d] %-24s %-8s %s", i+1, item.DishName, item.Course, cart.FormatPrice(item)))
		if item.Description != "" {
			a.ui.PrintHint("    " + item.Description)
		}
	}
	a.ui.PrintHint("Type 'add <n>' to order, or 'name <dish>' to create your own.")
}

func (a *cliApp) addPreset(payload string) {
	idx, ok := a.index(payload)
	if !ok {
		return
	}
	item, err := a.sess.AddPreset(idx)
	if err != nil {
		a.reportIndexError(payload, err)
		return
	}
	a.ui.PrintChat(conversation.LineAdded(item.DishName, a.sess.View().Total))
}

func (a *cliApp) addCustom(payload string) {
	idx, ok := a.index(payload)
	if !ok {
		return
	}
	item, err := a.sess.AddCustom(idx)
	if err != nil {
		a.reportIndexError(payload, err)
		return
	}
	a.ui.PrintChat(conversation.LineAdded(item.DishName, a.sess.View().Total))
}

func (a *cliApp) unlist(payload string) {
	idx, ok := a.index(payload)
	if !ok {
		return
	}
	catalog := a.sess.View().Catalog
	if err := a.sess.RemoveFromMenu(idx); err != nil {
		a.reportIndexError(payload, err)
		return
	}
	a.ui.PrintChat(conversation.LineUnlisted(catalog[idx].DishName))
}

func (a *cliApp) showCustoms() {
	customs := a.sess.View().Customs
	if len(customs) == 0 {
		a.ui.PrintHint(conversation.LineNoCustoms())
		return
	}
	a.ui.PrintHeading("Your dishes:")
	for i, item := range customs {
		a.ui.PrintItem(fmt.Sprintf("[%d] %-24s %-8s %s", i+1, item.DishName, item.Course, cart.FormatPrice(item)))
		a.ui.PrintHint("    " + item.Description)
	}
}

func (a *cliApp) showCart() {
	v := a.sess.View()
	if v.CartSize == 0 {
		a.ui.PrintHint(conversation.LineCartEmpty())
		return
	}
	if len(v.Selection) == 0 {
		a.ui.PrintHint(conversation.LineNoMatches())
		return
	}

	heading := "Cart:"
	if !v.Filter.IsZero() {
		heading = fmt.Sprintf("Cart (%d of %d shown):", len(v.Selection), v.CartSize)
	}
	a.ui.PrintHeading(heading)
	for i, m := range v.Selection {
		a.ui.PrintItem(fmt.Sprintf("[%d] %-24s %-8s %s", i+1, m.Entry.Item.DishName, m.Entry.Item.Course, cart.FormatPrice(m.Entry.Item)))
	}
	a.ui.PrintHint(conversation.LineTotal(v.Total, v.CartSize))
}

func (a *cliApp) remove(payload string) {
	idx, ok := a.index(payload)
	if !ok {
		return
	}
	item, err := a.sess.RemoveAt(idx)
	if err != nil {
		a.reportIndexError(payload, err)
		return
	}
	a.ui.PrintChat(conversation.LineRemoved(item.DishName, a.sess.View().Total))
}

func (a *cliApp) clear() {
	if err := a.sess.ClearSelection(); err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.PrintChat(conversation.LineCleared())
}

func (a *cliApp) filter(text, course string) {
	if err := a.sess.SetFilter(text, course); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Unknown course %q. Use starter, main or dessert.", course))
		return
	}
	a.ui.PrintChat(conversation.LineFilterSet(a.sess.View().Filter))
	a.showCart()
}

func (a *cliApp) showTotal() {
	v := a.sess.View()
	a.ui.PrintChat(conversation.LineTotal(v.Total, v.CartSize))
}

// ── Custom dishes ────────────────────────────────────────────────

func (a *cliApp) setField(field, value string) {
	if err := a.sess.UpdateDraftField(field, value); err != nil {
		a.log.Error("updating draft: %v", err)
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.PrintHint(conversation.LineFieldSet(field, value))
}

func (a *cliApp) submitDraft(ctx context.Context) {
	item, err := a.sess.SubmitDraft()
	if err != nil {
		if nerr := a.notifier.NotifyUrgent(ctx, conversation.LineRejected(err)); nerr != nil {
			a.log.Error("notifying rejected draft: %v", nerr)
		}
		return
	}
	a.ui.PrintChat(conversation.LineCustomAdded(item.DishName, cart.FormatPrice(item), a.twoStep))
}

// ── Order ────────────────────────────────────────────────────────

func (a *cliApp) confirm(ctx context.Context) {
	before := a.sess.View().OrderState
	_, err := a.sess.RequestConfirmOrder(ctx)
	switch {
	case errors.Is(err, domain.ErrOrderNotAllowed):
		a.ui.PrintUrgent(conversation.LineCannotOrder())
	case errors.Is(err, domain.ErrOrderClosed):
		a.ui.PrintHint(conversation.LineOrderClosed())
	case err != nil:
		a.log.Error("confirming order: %v", err)
		a.ui.PrintUrgent(err.Error())
	case before == domain.OrderConfirming:
		a.ui.PrintHint(conversation.LineStillConfirming())
	default:
		a.ui.PrintChat(conversation.LineConfirming(a.sess.View().Total))
	}
}

func (a *cliApp) purchase(ctx context.Context) {
	r, err := a.sess.RequestConfirmPurchase(ctx)
	if errors.Is(err, domain.ErrNotConfirmed) {
		a.ui.PrintHint(conversation.LineNotConfirmed())
		return
	}
	if err != nil {
		a.log.Error("purchase: %v", err)
		a.ui.PrintUrgent(err.Error())
		return
	}

	a.ui.PrintHeading("Receipt:")
	for _, item := range r.Items {
		a.ui.PrintItem(fmt.Sprintf("%-28s %s", item.DishName, cart.FormatPrice(item)))
	}
	a.ui.PrintItem(fmt.Sprintf("%-28s %s", "Total", cart.FormatCurrency(r.Total)))

	if all, err := a.receipts.List(ctx); err == nil {
		a.ui.PrintHint(fmt.Sprintf("Orders this session: %d. Type 'new' to order again.", len(all)))
	}
}

func (a *cliApp) newOrder() {
	if err := a.sess.StartNewOrder(); err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.PrintChat(conversation.LineNewOrder())
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Commands:")
	a.ui.PrintItem("  menu               Show the menu")
	a.ui.PrintItem("  add <n>            Add menu dish n to the cart")
	a.ui.PrintItem("  cart               Show the cart")
	a.ui.PrintItem("  remove <n>         Remove cart line n")
	a.ui.PrintItem("  clear              Empty the cart")
	a.ui.PrintItem("  total              Show the total")
	a.ui.PrintItem("  filter [text] [course=<c>]  Narrow the cart view")
	a.ui.PrintItem("  unlist <n>         Take menu dish n off the menu")
	a.ui.PrintItem("  unfilter           Show the whole cart")
	a.ui.Println("")
	a.ui.PrintHeading("Custom dishes:")
	a.ui.PrintItem("  name <dish>        Set the dish name")
	a.ui.PrintItem("  desc <text>        Set the description")
	a.ui.PrintItem("  course <c>         starter, main or dessert")
	a.ui.PrintItem("  price <amount>     e.g. 12.50")
	a.ui.PrintItem("  submit             Add the dish")
	if a.twoStep {
		a.ui.PrintItem("  customs            List your saved dishes")
		a.ui.PrintItem("  add custom <n>     Add saved dish n to the cart")
	}
	a.ui.Println("")
	a.ui.PrintHeading("Order:")
	a.ui.PrintItem("  confirm            Place the order")
	a.ui.PrintItem("  purchase           Pay for a confirmed order")
	a.ui.PrintItem("  new                Start a new order")
	a.ui.PrintItem("  quit               Exit")
}

// ── Helpers ──────────────────────────────────────────────────────

// openLogFile opens path for appending, creating its directory first.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

// index converts a 1-based list number into a 0-based index.
func (a *cliApp) index(payload string) (int, bool) {
	n, err := strconv.Atoi(payload)
	if err != nil || n < 1 {
		a.ui.PrintHint(conversation.LineBadNumber(payload))
		return 0, false
	}
	return n - 1, true
}

func (a *cliApp) reportIndexError(payload string, err error) {
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		a.ui.PrintHint(conversation.LineBadNumber(payload))
		return
	}
	a.ui.PrintUrgent(err.Error())
}
