package canvas

// Event names emitted after successful mutations.
const (
	EventSectionCreated   = "canvas:section-created"
	EventSectionUpdated   = "canvas:section-updated"
	EventSectionDeleted   = "canvas:section-deleted"
	EventComponentAdded   = "canvas:component-added"
	EventComponentUpdated = "canvas:component-updated"
	EventComponentDeleted = "canvas:component-deleted"
	EventComponentMoved   = "canvas:component-moved"
	EventSelectionChanged = "canvas:selection-changed"
)

// EventEmitter receives change notifications from a Canvas. Emit is called
// synchronously from inside the mutating operation and must not call back
// into the canvas.
type EventEmitter interface {
	Emit(event string, data any)
}

// NopEmitter discards every event.
type NopEmitter struct{}

func (NopEmitter) Emit(string, any) {}

// Recorder is an EventEmitter that records all calls.
type Recorder struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission.
type EmittedEvent struct {
	Event string
	Data  any
}

func (r *Recorder) Emit(event string, data any) {
	r.Events = append(r.Events, EmittedEvent{Event: event, Data: data})
}

// Names returns the recorded event names in emission order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Events))
	for i, e := range r.Events {
		names[i] = e.Event
	}
	return names
}

// Reset drops every recorded event.
func (r *Recorder) Reset() {
	r.Events = nil
}

// MovedEvent is the payload of EventComponentMoved.
type MovedEvent struct {
	ID   string `json:"id"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// SelectionEvent is the payload of EventSelectionChanged.
type SelectionEvent struct {
	ComponentID string `json:"componentId"`
	SectionID   string `json:"sectionId"`
}
