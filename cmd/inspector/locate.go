package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"locator-inspector/internal/bootstrap"
	"locator-inspector/internal/console"
	"locator-inspector/internal/entity"
	"locator-inspector/internal/usecase"
	"locator-inspector/internal/usecase/adapters"

	"github.com/spf13/cobra"
)

type locateOptions struct {
	file    string
	url     string
	target  string
	scope   string
	trigger string
	ctrl    bool
	alt     bool
	shift   bool
	json    bool
}

func newLocateCmd() *cobra.Command {
	var opts locateOptions

	cmd := &cobra.Command{
		Use:   "locate --target <css> (--file <page.html> | --url <url>)",
		Short: "Print the locators of one element",
		Example: `  inspector locate --file page.html --target "#login button"
  inspector locate --file page.html --scope checkout --target input --json
  inspector locate --url https://example.com --target "a" --trigger click --alt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}

			var svc *usecase.Service
			app := bootstrap.NewLocateApp(&svc)
			if err := app.Err(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if err := app.Start(ctx); err != nil {
				return err
			}
			defer app.Stop(context.Background())

			return runLocate(ctx, svc.Inspector, opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "offline HTML snapshot to load")
	flags.StringVarP(&opts.url, "url", "u", "", "page to open in the browser")
	flags.StringVarP(&opts.target, "target", "t", "", "CSS query selecting the element to inspect (first match wins)")
	flags.StringVarP(&opts.scope, "scope", "s", "", "frame or shadow root to search in, by hierarchy name")
	flags.StringVar(&opts.trigger, "trigger", string(entity.TriggerHover), "hover, click or context")
	flags.BoolVar(&opts.ctrl, "ctrl", false, "hold ctrl")
	flags.BoolVar(&opts.alt, "alt", false, "hold alt")
	flags.BoolVar(&opts.shift, "shift", false, "hold shift")
	flags.BoolVar(&opts.json, "json", false, "print the result as JSON")

	return cmd
}

func (o locateOptions) validate() error {
	if o.target == "" {
		return errors.New("--target is required")
	}

	if (o.file == "") == (o.url == "") {
		return errors.New("exactly one of --file or --url is required")
	}

	return nil
}

func (o locateOptions) request() entity.InspectRequest {
	return entity.InspectRequest{
		Target: o.target,
		Scope:  o.scope,
		Activation: entity.Activation{
			Active:    true,
			Trigger:   entity.Trigger(o.trigger),
			Modifiers: entity.Modifiers{Ctrl: o.ctrl, Alt: o.alt, Shift: o.shift},
		},
	}
}

func runLocate(ctx context.Context, inspector adapters.InspectorService, opts locateOptions, out io.Writer) error {
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()

		if _, err := inspector.LoadHTML(ctx, opts.file, f); err != nil {
			return err
		}
	} else if _, err := inspector.Open(ctx, opts.url); err != nil {
		return err
	}

	inspection, err := inspector.Inspect(ctx, opts.request())
	if err != nil {
		return err
	}

	if opts.json {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(newLocateOutput(inspection))
	}

	console.RenderInspection(out, inspection)

	return nil
}

type locateOutput struct {
	Snapshot      string                `json:"snapshot"`
	Category      entity.Category       `json:"category,omitempty"`
	CSS           string                `json:"css,omitempty"`
	CSSQuality    string                `json:"css_quality,omitempty"`
	Matches       int                   `json:"matches"`
	Unique        bool                  `json:"unique"`
	XPath         string                `json:"xpath,omitempty"`
	XPathQuality  string                `json:"xpath_quality,omitempty"`
	Context       []entity.ContextFrame `json:"context,omitempty"`
	Hierarchy     string                `json:"hierarchy,omitempty"`
	ScopePath     string                `json:"scope_path,omitempty"`
	FrameXPath    string                `json:"frame_xpath,omitempty"`
	Selenium      string                `json:"selenium,omitempty"`
	Playwright    string                `json:"playwright,omitempty"`
	Cypress       string                `json:"cypress,omitempty"`
	Copy          entity.CopyAction     `json:"copy"`
	PassedThrough bool                  `json:"passed_through,omitempty"`
}

func newLocateOutput(inspection *entity.Inspection) locateOutput {
	loc := inspection.Locator

	out := locateOutput{
		Snapshot:      inspection.SnapshotID.String(),
		Copy:          inspection.Copy,
		PassedThrough: inspection.PassThrough,
	}

	if inspection.PassThrough {
		return out
	}

	out.Category = loc.Category
	out.CSS = loc.Selector
	out.CSSQuality = loc.SelectorQuality.String()
	out.Matches = loc.SelectorMatches
	out.Unique = loc.Unique
	out.XPath = loc.Path
	out.XPathQuality = loc.PathQuality.String()
	out.Context = loc.Chain
	out.Hierarchy = loc.Hierarchy
	out.ScopePath = loc.ScopePath
	out.FrameXPath = loc.FrameXPath
	out.Selenium = loc.Snippets.Selenium
	out.Playwright = loc.Snippets.Playwright
	out.Cypress = loc.Snippets.Cypress

	return out
}
