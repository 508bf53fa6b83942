package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"locator-inspector/internal/entity"

	"github.com/olekukonko/tablewriter"
)

// RenderInspection writes the locators of an inspection as a two-column table.
func RenderInspection(w io.Writer, inspection *entity.Inspection) {
	if inspection.PassThrough {
		fmt.Fprintln(w, "click passed through to the page (hold ctrl, alt or shift to capture)")

		return
	}

	loc := inspection.Locator

	table := newTable(w, "Field", "Value")
	table.Append([]string{"Category", string(loc.Category)})
	table.Append([]string{"CSS", loc.Selector})
	table.Append([]string{"CSS quality", loc.SelectorQuality.String()})
	table.Append([]string{"Matches", matchesLabel(loc.SelectorMatches, loc.Unique)})
	table.Append([]string{"XPath", loc.Path})
	table.Append([]string{"XPath quality", loc.PathQuality.String()})

	if loc.InScope() {
		table.Append([]string{"Context", loc.Hierarchy})
		table.Append([]string{"Scope path", loc.ScopePath})
		if loc.FrameXPath != "" {
			table.Append([]string{"Frame XPath", loc.FrameXPath})
		}
		table.Append([]string{"Selenium", loc.Snippets.Selenium})
		table.Append([]string{"Playwright", loc.Snippets.Playwright})
		table.Append([]string{"Cypress", loc.Snippets.Cypress})
	}

	if text := copyText(inspection); text != "" {
		table.Append([]string{"Copy", text})
	}

	table.Render()
}

// RenderSnapshot writes a short summary of a loaded snapshot.
func RenderSnapshot(w io.Writer, snapshot *entity.Snapshot) {
	kind := "offline"
	if snapshot.Live {
		kind = "live"
	}

	table := newTable(w, "Snapshot", "Source", "Title", "Kind", "Scopes")
	table.Append([]string{
		snapshot.ID.String(),
		snapshot.Source,
		snapshot.Title,
		kind,
		strconv.Itoa(len(snapshot.Scopes)),
	})
	table.Render()
}

func RenderScopes(w io.Writer, scopes []string) {
	if len(scopes) == 0 {
		fmt.Fprintln(w, "no frames or shadow roots found")

		return
	}

	table := newTable(w, "#", "Scope")
	for i, scope := range scopes {
		table.Append([]string{strconv.Itoa(i + 1), scope})
	}
	table.Render()
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func matchesLabel(matches int, unique bool) string {
	if unique {
		return "1 (unique)"
	}

	return strconv.Itoa(matches) + " (not unique)"
}

// copyText is what the caller would place on the clipboard.
func copyText(inspection *entity.Inspection) string {
	loc := inspection.Locator

	switch inspection.Copy {
	case entity.CopySelector:
		return loc.Selector
	case entity.CopyPath:
		return loc.Path
	case entity.CopyBoth:
		return strings.Join([]string{loc.Selector, loc.Path}, "\n")
	}

	return ""
}
