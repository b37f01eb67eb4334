// Resolve TUI - interactive terminal client for resolving X.com share links
// without running the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kelseyhightower/envconfig"
	"github.com/rivo/tview"
	"golang.org/x/term"

	"github.com/iconidentify/xresolve/internal/config"
	"github.com/iconidentify/xresolve/internal/domain"
	"github.com/iconidentify/xresolve/pkg/twitter"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const resolveTimeout = 20 * time.Second

type tui struct {
	app     *tview.Application
	client  *twitter.Client
	input   *tview.InputField
	results *tview.TextView
}

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("resolve-tui %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "resolve-tui requires an interactive terminal")
		os.Exit(1)
	}

	// Resolver settings come from the environment, defaults otherwise.
	var rcfg config.ResolverConfig
	if err := envconfig.Process("", &rcfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	t := newTUI(twitter.NewClient(rcfg))
	if err := t.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func newTUI(client *twitter.Client) *tui {
	t := &tui{
		app:    tview.NewApplication(),
		client: client,
	}
	t.setupUI()
	return t
}

func (t *tui) setupUI() {
	header := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(fmt.Sprintf("[::b]xresolve[::-] %s", Version))
	header.SetBackgroundColor(tcell.ColorDarkBlue)

	t.input = tview.NewInputField().
		SetLabel(" URL: ").
		SetFieldWidth(0)
	t.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		url := t.input.GetText()
		if url == "" {
			return
		}
		t.input.SetText("")
		go t.resolve(url)
	})

	t.results = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	t.results.SetBorder(true).SetTitle(" Results ")
	fmt.Fprintln(t.results, "[gray]Paste an x.com, twitter.com, or t.co link and press Enter.")

	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]Enter[white]:Resolve [yellow]Esc[white]:Quit")
	footer.SetBackgroundColor(tcell.ColorDarkBlue)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(t.input, 1, 0, true).
		AddItem(t.results, 0, 1, false).
		AddItem(footer, 1, 0, false)

	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.app.Stop()
			return nil
		}
		return event
	})

	t.app.SetRoot(flex, true)
}

func (t *tui) run() error {
	return t.app.Run()
}

// resolve runs off the UI goroutine; all writes go through QueueUpdateDraw.
func (t *tui) resolve(url string) {
	t.appendf("\n[white]resolving [aqua]%s[white] ...", url)

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	result, err := t.client.ResolveURL(ctx, url)
	if err != nil {
		t.appendf("[red]error:[white] %v", err)
		return
	}

	t.showResult(result)
}

func (t *tui) showResult(result *domain.MediaResult) {
	t.appendf("[green]post %s[white] by %s", result.PostID, result.Author.DisplayName)
	if result.Title != "" {
		t.appendf("  %s", tview.Escape(result.Title))
	}

	switch result.Kind() {
	case domain.MediaKindVideo:
		t.appendf("  [yellow]video:[white] %s", result.VideoURL)
		if result.CoverURL != "" {
			t.appendf("  [yellow]cover:[white] %s", result.CoverURL)
		}
	case domain.MediaKindGallery:
		t.appendf("  [yellow]images (%d):", len(result.Images))
		for _, img := range result.Images {
			t.appendf("    %s", img.URL)
		}
	}
}

func (t *tui) appendf(format string, args ...interface{}) {
	t.app.QueueUpdateDraw(func() {
		fmt.Fprintf(t.results, format+"\n", args...)
		t.results.ScrollToEnd()
	})
}
