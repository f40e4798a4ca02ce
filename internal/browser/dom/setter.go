// File: internal/browser/dom/setter.go
package dom

import (
	"fmt"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Event is a DOM event type.
type Event string

const (
	EventInput    Event = "input"
	EventChange   Event = "change"
	EventKeyDown  Event = "keydown"
	EventKeyPress Event = "keypress"
	EventKeyUp    Event = "keyup"
	EventBlur     Event = "blur"
	EventClick    Event = "click"
)

// ValueEvents is the order in which events follow a value write.
var ValueEvents = []Event{EventInput, EventChange, EventKeyDown, EventKeyPress, EventKeyUp, EventBlur}

// CheckEvents is the order in which events follow a checked-state change.
var CheckEvents = []Event{EventClick, EventInput, EventChange}

// ValueSetter writes control state through the platform's own setters and
// fires the events a framework listens for.
type ValueSetter interface {
	// SetValue writes the value of an input or textarea.
	SetValue(n *html.Node, value string) error
	// SelectOption selects the option of a select whose value is optionValue.
	SelectOption(n *html.Node, optionValue string) error
	// SetChecked checks or unchecks a checkbox or radio. Checking a radio
	// unchecks the rest of its group.
	SetChecked(n *html.Node, checked bool) error
}

// Dispatched is one recorded event.
type Dispatched struct {
	Target *html.Node
	Type   Event
}

// nativeSetter writes a value the way the element type's own property setter would.
type nativeSetter func(n *html.Node, value string) error

// MemorySetter applies writes to the parsed tree and records the events
// a browser would have dispatched.
type MemorySetter struct {
	doc     *Document
	setters map[string]nativeSetter

	mu     sync.Mutex
	events []Dispatched
}

// NewMemorySetter creates a setter bound to doc.
func NewMemorySetter(doc *Document) *MemorySetter {
	m := &MemorySetter{doc: doc}
	m.setters = map[string]nativeSetter{
		"input":    setInputValue,
		"textarea": setTextareaValue,
		"select":   selectOptionValue,
	}
	return m
}

var _ ValueSetter = (*MemorySetter)(nil)

func setInputValue(n *html.Node, value string) error {
	setAttr(n, "value", value)
	return nil
}

func setTextareaValue(n *html.Node, value string) error {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	return nil
}

func selectOptionValue(n *html.Node, value string) error {
	found := false
	for _, opt := range htmlquery.Find(n, ".//option") {
		if !found && optionValue(opt) == value {
			setAttr(opt, "selected", "selected")
			found = true
			continue
		}
		removeAttr(opt, "selected")
	}
	if !found {
		return fmt.Errorf("option %q not found", value)
	}
	return nil
}

func (m *MemorySetter) record(n *html.Node, events []Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range events {
		m.events = append(m.events, Dispatched{Target: n, Type: e})
	}
}

func (m *MemorySetter) write(n *html.Node, value string, want ...string) error {
	tag := Tag(n)
	ok := false
	for _, w := range want {
		ok = ok || tag == w
	}
	if !ok {
		return fmt.Errorf("cannot set value on <%s>", tag)
	}
	setter := m.setters[tag]
	var err error
	if mErr := m.doc.mutate(n, func() { err = setter(n, value) }); mErr != nil {
		return mErr
	}
	if err != nil {
		return err
	}
	m.record(n, ValueEvents)
	return nil
}

// SetValue implements ValueSetter.
func (m *MemorySetter) SetValue(n *html.Node, value string) error {
	return m.write(n, value, "input", "textarea")
}

// SelectOption implements ValueSetter.
func (m *MemorySetter) SelectOption(n *html.Node, optionValue string) error {
	return m.write(n, optionValue, "select")
}

// SetChecked implements ValueSetter.
func (m *MemorySetter) SetChecked(n *html.Node, checked bool) error {
	if !IsCheckable(n) {
		return fmt.Errorf("cannot check <%s type=%s>", Tag(n), InputType(n))
	}
	err := m.doc.mutate(n, func() {
		if !checked {
			removeAttr(n, "checked")
			return
		}
		for _, other := range radioGroup(n) {
			removeAttr(other, "checked")
		}
		setAttr(n, "checked", "checked")
	})
	if err != nil {
		return err
	}
	m.record(n, CheckEvents)
	return nil
}

// radioGroup returns the other radios sharing n's name within its form (or document).
func radioGroup(n *html.Node) []*html.Node {
	name := Attr(n, "name")
	if InputType(n) != "radio" || name == "" {
		return nil
	}
	root := FindParentForm(n)
	if root == nil {
		root = n
		for root.Parent != nil {
			root = root.Parent
		}
	}
	var out []*html.Node
	for _, r := range htmlquery.Find(root, ".//input") {
		if r != n && InputType(r) == "radio" && Attr(r, "name") == name {
			out = append(out, r)
		}
	}
	return out
}

// Events returns a copy of the recorded events.
func (m *MemorySetter) Events() []Dispatched {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Dispatched(nil), m.events...)
}

// EventsFor returns the event types recorded for n, in order.
func (m *MemorySetter) EventsFor(n *html.Node) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.events {
		if e.Target == n {
			out = append(out, e.Type)
		}
	}
	return out
}

// String summarizes the event log, mostly for test failure output.
func (m *MemorySetter) String() string {
	var b strings.Builder
	for _, e := range m.Events() {
		fmt.Fprintf(&b, "%s:%s ", Tag(e.Target), e.Type)
	}
	return strings.TrimSpace(b.String())
}
