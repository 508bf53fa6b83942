package browser

import (
	"strconv"

	"locator-inspector/internal/entity"
	"locator-inspector/internal/locator"
	"locator-inspector/internal/ports"
	"locator-inspector/pkg/logg"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// frames walks the frame tree below main, depth first, and snapshots each
// attached child frame with the chain of iframes leading to it.
func (m *Manager) frames(main playwright.Frame) []ports.FrameSnapshot {
	var out []ports.FrameSnapshot

	var walk func(parent playwright.Frame, chain entity.ContextChain)
	walk = func(parent playwright.Frame, chain entity.ContextChain) {
		for _, child := range parent.ChildFrames() {
			if child.IsDetached() {
				continue
			}

			frame, err := m.describeFrame(child)
			if err != nil {
				m.logger.Warn("Skipping frame", zap.String(logg.URL, child.URL()), zap.Error(err))

				continue
			}

			current := append(append(entity.ContextChain(nil), chain...), frame)

			content, err := child.Content()
			if err != nil {
				m.logger.Warn("Frame content unavailable", zap.String(logg.URL, child.URL()), zap.Error(err))

				continue
			}

			out = append(out, ports.FrameSnapshot{
				Chain: current,
				HTML:  content,
				Scope: newLiveScope(child, m.logger),
			})

			walk(child, current)
		}
	}

	walk(main, nil)

	return out
}

// describeFrame names a frame and builds the selector of its iframe element in the parent document.
func (m *Manager) describeFrame(frame playwright.Frame) (entity.ContextFrame, error) {
	host, err := frame.FrameElement()
	if err != nil {
		return entity.ContextFrame{}, err
	}

	result, err := host.Evaluate(frameHostScript)
	if err != nil {
		return entity.ContextFrame{}, err
	}

	info, _ := result.(map[string]interface{})

	return frameFromHost(info, frame.Name()), nil
}

func frameFromHost(info map[string]interface{}, frameName string) entity.ContextFrame {
	tag := getString(info, "tag")
	if tag == "" {
		tag = "iframe"
	}

	name := getString(info, "name")
	id := getString(info, "id")
	index := int(getFloat(info["index"]))
	siblings := int(getFloat(info["siblings"]))

	var selector string
	switch {
	case name != "":
		selector = tag + locator.AttrSelector("name", name)
	case id != "":
		selector = locator.IDSelector(id)
	case siblings > 1:
		selector = tag + ":nth-of-type(" + strconv.Itoa(index) + ")"
	default:
		selector = tag
	}

	label := name
	if label == "" {
		label = frameName
	}
	if label == "" {
		label = id
	}
	if label == "" {
		label = tag + "-frame-" + strconv.Itoa(max(index, 1))
	}

	return entity.ContextFrame{Kind: entity.FrameKindFrame, Name: label, Selector: selector}
}
