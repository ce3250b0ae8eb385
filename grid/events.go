package grid

type EventKind int

const (
	EventDocument EventKind = iota
	EventSaved
	EventBrush
	EventTool
	EventZoom
	EventLayer
	EventSettings
	EventPaint
)

func (k EventKind) String() string {
	switch k {
	case EventDocument:
		return "document"
	case EventSaved:
		return "saved"
	case EventBrush:
		return "brush"
	case EventTool:
		return "tool"
	case EventZoom:
		return "zoom"
	case EventLayer:
		return "layer"
	case EventSettings:
		return "settings"
	case EventPaint:
		return "paint"
	default:
		return "unknown"
	}
}

// Event tells observers what changed.
type Event struct {
	Kind   EventKind
	Engine *Engine
}

// Subscribe registers fn to be called synchronously, in registration order,
// after every state change. The returned func removes it.
func (e *Engine) Subscribe(fn func(Event)) func() {
	e.observers = append(e.observers, fn)
	idx := len(e.observers) - 1
	return func() {
		if idx < len(e.observers) {
			e.observers[idx] = nil
		}
	}
}

func (e *Engine) notify(kind EventKind) {
	ev := Event{Kind: kind, Engine: e}
	for _, fn := range e.observers {
		if fn != nil {
			fn(ev)
		}
	}
}
