package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"locator-inspector/internal/config"
	"locator-inspector/internal/entity"
	"locator-inspector/internal/usecase"
	"locator-inspector/pkg/apperr"
	"locator-inspector/pkg/logg"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var errExit = errors.New("exit")

type Interface struct {
	config     *config.Config
	logger     *zap.Logger
	usecase    *usecase.Service
	shutdowner fx.Shutdowner
	in         io.Reader
	out        io.Writer
	ctx        context.Context
	cancel     context.CancelFunc

	mu       sync.Mutex
	stopping bool
	active   bool
	scope    string
}

type Params struct {
	fx.In

	Config     *config.Config
	Logger     *zap.Logger
	Usecase    *usecase.Service
	Shutdowner fx.Shutdowner `optional:"true"`
}

func NewInterface(params Params) *Interface {
	return newInterface(params, os.Stdin, os.Stdout)
}

func newInterface(params Params, in io.Reader, out io.Writer) *Interface {
	ctx, cancel := context.WithCancel(context.Background())

	return &Interface{
		config:     params.Config,
		logger:     params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase:    params.Usecase,
		shutdowner: params.Shutdowner,
		in:         in,
		out:        out,
		ctx:        ctx,
		cancel:     cancel,
		active:     true,
	}
}

// Start runs the read-eval loop until input ends, the user exits or Stop is called.
func (i *Interface) Start() error {
	i.printBanner()
	i.printHelp()

	scanner := bufio.NewScanner(i.in)

	for !i.isStopping() {
		fmt.Fprint(i.out, "\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if err := i.handleCommand(input); err != nil {
			if errors.Is(err, errExit) {
				break
			}

			i.logger.Debug("Command error", zap.Error(err))
			fmt.Fprintf(i.out, "Error: %s\n", describe(err))
		}
	}

	if i.shutdowner != nil && !i.isStopping() {
		return i.shutdowner.Shutdown()
	}

	return scanner.Err()
}

func (i *Interface) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stopping {
		return nil
	}

	i.stopping = true
	i.logger.Info("Stopping console interface...")
	i.cancel()

	return nil
}

func (i *Interface) isStopping() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.stopping
}

func (i *Interface) handleCommand(input string) error {
	command, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch command {
	case "help", "h":
		i.printHelp()

		return nil
	case "exit", "quit", "q":
		fmt.Fprintln(i.out, "Shutting down...")

		return errExit
	case "load":
		return i.load(rest)
	case "open":
		return i.open(rest)
	case "inspect", "i":
		return i.inspect(rest)
	case "scopes":
		return i.scopes()
	case "scope":
		return i.setScope(rest)
	case "toggle":
		i.active = !i.active
		fmt.Fprintf(i.out, "Inspector %s\n", onOff(i.active))

		return nil
	}

	return apperr.InvalidReqError("handleCommand", "command", fmt.Errorf("unknown command %q, type help", command))
}

func (i *Interface) load(path string) error {
	if path == "" {
		return apperr.InvalidReqError("load", "path", errors.New("usage: load <file.html>"))
	}

	f, err := os.Open(path)
	if err != nil {
		return apperr.Wrap("load", apperr.CodeNotFound, err, map[string]any{
			apperr.MetaReason: "open_file_failed",
			apperr.MetaSource: path,
		})
	}
	defer f.Close()

	snapshot, err := i.usecase.Inspector.LoadHTML(i.ctx, path, f)
	if err != nil {
		return err
	}

	i.scope = ""
	RenderSnapshot(i.out, snapshot)

	return nil
}

func (i *Interface) open(url string) error {
	if url == "" {
		return apperr.InvalidReqError("open", "url", errors.New("usage: open <url>"))
	}

	fmt.Fprintf(i.out, "Opening %s...\n", url)

	snapshot, err := i.usecase.Inspector.Open(i.ctx, url)
	if err != nil {
		return err
	}

	i.scope = ""
	RenderSnapshot(i.out, snapshot)

	return nil
}

func (i *Interface) inspect(args string) error {
	target, activation := parseInspect(args)
	activation.Active = i.active

	inspection, err := i.usecase.Inspector.Inspect(i.ctx, entity.InspectRequest{
		Target:     target,
		Scope:      i.scope,
		Activation: activation,
	})
	if err != nil {
		return err
	}

	RenderInspection(i.out, inspection)

	return nil
}

func (i *Interface) scopes() error {
	scopes, err := i.usecase.Inspector.Scopes()
	if err != nil {
		return err
	}

	RenderScopes(i.out, scopes)

	return nil
}

func (i *Interface) setScope(name string) error {
	if name == "" || name == "-" {
		i.scope = ""
		fmt.Fprintln(i.out, "Scope: top-level document")

		return nil
	}

	scopes, err := i.usecase.Inspector.Scopes()
	if err != nil {
		return err
	}

	for _, scope := range scopes {
		if scope == name {
			i.scope = name
			fmt.Fprintf(i.out, "Scope: %s\n", name)

			return nil
		}
	}

	return apperr.NotFoundError("setScope", fmt.Errorf("unknown scope %q, see scopes", name))
}

var (
	triggerWords = map[string]entity.Trigger{
		"hover":   entity.TriggerHover,
		"click":   entity.TriggerClick,
		"context": entity.TriggerContext,
		"right":   entity.TriggerContext,
	}
	modifierWords = map[string]bool{"ctrl": true, "alt": true, "shift": true}
)

// parseInspect splits "<css target> [trigger] [modifiers...]". Trailing
// keywords set the activation; everything before them is the target.
// A modifier without a trigger implies a click.
func parseInspect(args string) (string, entity.Activation) {
	fields := strings.Fields(args)
	activation := entity.Activation{Trigger: entity.TriggerHover}

	var explicit bool
	end := len(fields)
	for end > 1 {
		word := strings.ToLower(fields[end-1])

		if trigger, ok := triggerWords[word]; ok {
			activation.Trigger = trigger
			explicit = true
		} else if modifierWords[word] {
			switch word {
			case "ctrl":
				activation.Modifiers.Ctrl = true
			case "alt":
				activation.Modifiers.Alt = true
			case "shift":
				activation.Modifiers.Shift = true
			}
		} else {
			break
		}

		end--
	}

	if !explicit && activation.Modifiers.Any() {
		activation.Trigger = entity.TriggerClick
	}

	return strings.Join(fields[:end], " "), activation
}

// describe renders an error for the console user as its cause and code.
func describe(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		return fmt.Sprintf("%v [%s]", appErr.Err, appErr.Code)
	}

	return err.Error()
}

func onOff(active bool) string {
	if active {
		return "on"
	}

	return "off"
}

func (i *Interface) printBanner() {
	fmt.Fprintln(i.out, `
  Locator Inspector
  CSS selectors and XPath expressions for any element of a page`)
}

func (i *Interface) printHelp() {
	fmt.Fprintln(i.out, `
Available commands:
  load <file.html>                    Load an offline HTML snapshot
  open <url>                          Open a page in the browser and snapshot it
  inspect <css> [hover|click|context] [ctrl] [alt] [shift]
                                      Generate locators for the first match of <css>
  scopes                              List frames and shadow roots of the snapshot
  scope <name>|-                      Inspect inside a frame or shadow root (- for top level)
  toggle                              Switch the inspector on or off
  help, h                             Show this help message
  exit, quit, q                       Exit the application`)
}
