package grid

import (
	"fmt"
	"strings"
)

type Tool int

const (
	ToolNone Tool = iota
	ToolBrush
	ToolFill
	ToolZoom
)

func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "None"
	case ToolBrush:
		return "Brush"
	case ToolFill:
		return "Fill"
	case ToolZoom:
		return "Zoom"
	default:
		return "Unknown"
	}
}

// Tools lists the selectable tools in toolbar order.
func Tools() []Tool {
	return []Tool{ToolBrush, ToolFill, ToolZoom}
}

// ParseTool maps a case-insensitive tool name to a Tool.
func ParseTool(s string) (Tool, error) {
	for _, t := range []Tool{ToolNone, ToolBrush, ToolFill, ToolZoom} {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return ToolNone, fmt.Errorf("grid: unknown tool %q", s)
}

// Button identifies the pointer button of a press or drag.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)
