// Package form is a headless stand-in for the page DOM: elements addressed
// by ID, CSS state classes, and blur/input/submit listeners.
package form

import "sync"

// Document indexes elements by ID.
type Document struct {
	mu       sync.RWMutex
	elements map[string]Element
}

func NewDocument(elements ...Element) *Document {
	d := &Document{elements: make(map[string]Element)}
	d.Add(elements...)
	return d
}

// Add registers elements, replacing any previous element with the same ID.
// Nil elements are skipped.
func (d *Document) Add(elements ...Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range elements {
		if e == nil {
			continue
		}
		d.elements[e.ElementID()] = e
	}
}

// ByID returns the element registered under id, or nil.
func (d *Document) ByID(id string) Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.elements[id]
}

// The typed lookups return nil when the ID is missing or names an element
// of another kind.

func (d *Document) Form(id string) *Form {
	f, _ := d.ByID(id).(*Form)
	return f
}

func (d *Document) Input(id string) *Input {
	i, _ := d.ByID(id).(*Input)
	return i
}

func (d *Document) Checkbox(id string) *Checkbox {
	c, _ := d.ByID(id).(*Checkbox)
	return c
}

func (d *Document) ErrorSlot(id string) *ErrorSlot {
	e, _ := d.ByID(id).(*ErrorSlot)
	return e
}

func (d *Document) Button(id string) *Button {
	b, _ := d.ByID(id).(*Button)
	return b
}

func (d *Document) StatusRegion(id string) *StatusRegion {
	s, _ := d.ByID(id).(*StatusRegion)
	return s
}
