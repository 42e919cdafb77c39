package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mmcdole/kindred/internal/adapter"
	"github.com/mmcdole/kindred/internal/adapter/crm"
	"github.com/mmcdole/kindred/internal/app"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/search"
	"github.com/mmcdole/kindred/internal/tui"
	"github.com/mmcdole/kindred/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `Usage: kindred [-v] <command>

Commands:
  setup              configure the server URL and API key
  sync               refresh every list
  contacts [query]   list contacts, optionally filtered
  events             list events
  settings           show the organization settings
  cache clear        remove cached data
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("kindred %s\n", Version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return nil
	}

	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)
	logger.Info("starting kindred", "version", Version, "command", args[0])

	switch args[0] {
	case "setup":
		return runSetup(ctx, cfg, logger)
	case "cache":
		if len(args) < 2 || args[1] != "clear" {
			return errors.New("usage: kindred cache clear")
		}
		return runCacheClear(os.Stdout, cfg.Cache.Dir)
	}

	a, err := app.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	switch args[0] {
	case "sync":
		return runSync(ctx, a)
	case "contacts":
		return runContacts(ctx, a, strings.Join(args[1:], " "), cfg.UI.PageSize)
	case "events":
		return runEvents(ctx, a, cfg.UI.PageSize)
	case "settings":
		return runSettings(ctx, a)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runSync(ctx context.Context, a *app.App) error {
	var (
		results []domain.RefreshResult
		err     error
	)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		results, err = tui.RunSync(ctx, a, os.Stdout)
	} else {
		results, err = a.Refresh(ctx, func(slice string, done, total int, err error) {
			printProgress(os.Stdout, slice, done, total, err)
		})
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if err != nil {
		return fmt.Errorf("%d of %d slices failed: %w", failed, len(results), err)
	}
	return nil
}

func runContacts(ctx context.Context, a *app.App, query string, pageSize int) error {
	q := domain.ListQuery{Page: 1, Limit: pageSize, Search: query}
	err := a.Contacts.FetchContacts(ctx, q)
	if errors.Is(err, domain.ErrOffline) {
		if len(a.Restore()) == 0 {
			return err
		}
		fmt.Fprintln(os.Stderr, styles.WarningStyle.Render("Server unreachable, showing cached contacts"))
	} else if err != nil {
		return err
	}

	contacts := a.Contacts.Contacts().Items()
	if query == "" {
		printContacts(os.Stdout, contacts, nil)
		return nil
	}
	// the server search is substring based; rank locally and highlight
	results := search.Contacts(query, contacts)
	if len(results) == 0 {
		printContacts(os.Stdout, contacts, nil)
		return nil
	}
	matched := make([]domain.Contact, len(results))
	marks := make([][]int, len(results))
	for i, r := range results {
		matched[i] = r.Item
		marks[i] = r.MatchedIndexes
	}
	printContacts(os.Stdout, matched, marks)
	return nil
}

func runEvents(ctx context.Context, a *app.App, pageSize int) error {
	if err := a.Events.FetchEvents(ctx, domain.ListQuery{Page: 1, Limit: pageSize, SortBy: "starts_at"}); err != nil {
		return err
	}
	printEvents(os.Stdout, a.Events.Events().Items())
	return nil
}

func runSettings(ctx context.Context, a *app.App) error {
	if err := a.Settings.LoadAll(ctx); err != nil {
		return err
	}
	org, _ := a.Settings.Organization().Selected()
	branding, _ := a.Settings.Branding().Selected()
	email, _ := a.Settings.Email().Selected()
	sms, _ := a.Settings.SMS().Selected()
	printSettings(os.Stdout, org, branding, email, sms)
	return nil
}

func runCacheClear(w io.Writer, dir string) error {
	if dir == "" {
		fmt.Fprintln(w, styles.DimStyle.Render("Cache is memory only, nothing to clear"))
		return nil
	}
	dir, err := adapter.ExpandHome(dir)
	if err != nil {
		return err
	}
	if err := adapter.ClearCache(dir); err != nil {
		return err
	}
	fmt.Fprintln(w, styles.SuccessStyle.Render(styles.DoneChar)+" Cache cleared")
	return nil
}

// runSetup prompts for the server and API key, checks them and saves config
func runSetup(ctx context.Context, cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println(styles.TitleStyle.Render("Welcome to Kindred!"))
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter your CRM URL (e.g., https://crm.example.org): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL := crm.NormalizeURL(input)
		if serverURL == "" {
			fmt.Println("URL cannot be empty. Please try again.")
			continue
		}

		apiKey, err := readSecret(reader, "API key: ")
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		fmt.Println(styles.DimStyle.Render("Checking connection..."))
		checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		client := crm.NewClient(serverURL, apiKey, logger, crm.WithTimeout(cfg.Server.Timeout), crm.WithMaxRetries(0))
		org, err := client.GetOrganization(checkCtx)
		cancel()
		if err != nil {
			fmt.Println(styles.ErrorStyle.Render(styles.FailedChar + " " + domain.Message(err, "Could not connect")))
			fmt.Println("Please check the URL and key and try again.")
			fmt.Println()
			continue
		}

		cfg.Server.URL = serverURL
		cfg.Server.APIKey = apiKey
		if err := adapter.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println()
		fmt.Println(styles.SuccessStyle.Render(styles.DoneChar) + " Connected to " + styles.AccentStyle.Render(org.Name))
		fmt.Println(styles.SuccessStyle.Render(styles.DoneChar) + " Configuration saved!")
		fmt.Println()
		fmt.Println("Run `kindred sync` to load your data.")
		return nil
	}
}

// readSecret reads a line without echo when stdin is a terminal
func readSecret(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return strings.TrimSpace(string(b)), err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
