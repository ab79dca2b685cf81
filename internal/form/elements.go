package form

import (
	"context"
	"sync"
)

// Element is anything addressable by ID inside a Document.
type Element interface {
	ElementID() string
}

// Resetter is implemented by controls that Form.Reset clears.
type Resetter interface {
	Element
	Reset()
}

// Input is a text-like control (text input or textarea).
type Input struct {
	id      string
	Classes *ClassList

	mu      sync.Mutex
	value   string
	onBlur  []func()
	onInput []func()
}

func NewInput(id, value string) *Input {
	return &Input{id: id, value: value, Classes: NewClassList("")}
}

func (i *Input) ElementID() string { return i.id }

func (i *Input) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

// SetValue changes the value without firing input listeners.
func (i *Input) SetValue(v string) {
	i.mu.Lock()
	i.value = v
	i.mu.Unlock()
}

// Edit models a user edit: the value changes and input listeners fire.
func (i *Input) Edit(v string) {
	i.mu.Lock()
	i.value = v
	listeners := append([]func(){}, i.onInput...)
	i.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Blur fires blur listeners.
func (i *Input) Blur() {
	i.mu.Lock()
	listeners := append([]func(){}, i.onBlur...)
	i.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (i *Input) OnBlur(fn func()) {
	i.mu.Lock()
	i.onBlur = append(i.onBlur, fn)
	i.mu.Unlock()
}

func (i *Input) OnInput(fn func()) {
	i.mu.Lock()
	i.onInput = append(i.onInput, fn)
	i.mu.Unlock()
}

func (i *Input) Reset() { i.SetValue("") }

// Checkbox is a boolean control.
type Checkbox struct {
	id string

	mu      sync.Mutex
	checked bool
}

func NewCheckbox(id string, checked bool) *Checkbox {
	return &Checkbox{id: id, checked: checked}
}

func (c *Checkbox) ElementID() string { return c.id }

func (c *Checkbox) Checked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checked
}

func (c *Checkbox) SetChecked(v bool) {
	c.mu.Lock()
	c.checked = v
	c.mu.Unlock()
}

func (c *Checkbox) Reset() { c.SetChecked(false) }

// ErrorSlot holds the error text shown next to a field.
type ErrorSlot struct {
	id string

	mu   sync.Mutex
	text string
}

func NewErrorSlot(id string) *ErrorSlot {
	return &ErrorSlot{id: id}
}

func (e *ErrorSlot) ElementID() string { return e.id }

func (e *ErrorSlot) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *ErrorSlot) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

// ButtonState is the visible state of a submit button.
type ButtonState struct {
	Disabled       bool `json:"disabled"`
	LabelVisible   bool `json:"labelVisible"`
	LoadingVisible bool `json:"loadingVisible"`
}

// Button is a submit control with a nested label and loading indicator.
type Button struct {
	id string

	mu       sync.Mutex
	state    ButtonState
	onChange []func(ButtonState)
}

func NewButton(id string) *Button {
	return &Button{id: id, state: ButtonState{LabelVisible: true}}
}

func (b *Button) ElementID() string { return b.id }

func (b *Button) State() ButtonState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Button) Disabled() bool { return b.State().Disabled }

// SetLoading disables the button and swaps the label for the loading
// indicator, or reverses that.
func (b *Button) SetLoading(loading bool) {
	b.mu.Lock()
	b.state = ButtonState{
		Disabled:       loading,
		LabelVisible:   !loading,
		LoadingVisible: loading,
	}
	state := b.state
	listeners := append([]func(ButtonState){}, b.onChange...)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (b *Button) OnChange(fn func(ButtonState)) {
	b.mu.Lock()
	b.onChange = append(b.onChange, fn)
	b.mu.Unlock()
}

// StatusState is the visible state of a status region.
type StatusState struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

// StatusRegion is the shared area reporting a submit outcome.
type StatusRegion struct {
	id string

	mu       sync.Mutex
	state    StatusState
	scrolls  int
	onChange []func(StatusState)
}

func NewStatusRegion(id, className string) *StatusRegion {
	return &StatusRegion{id: id, state: StatusState{Class: className}}
}

func (s *StatusRegion) ElementID() string { return s.id }

func (s *StatusRegion) State() StatusState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the class attribute and text content.
func (s *StatusRegion) Set(className, text string) {
	s.mu.Lock()
	s.state = StatusState{Class: className, Text: text}
	state := s.state
	listeners := append([]func(StatusState){}, s.onChange...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// ScrollIntoView records that the region was brought into view.
func (s *StatusRegion) ScrollIntoView() {
	s.mu.Lock()
	s.scrolls++
	s.mu.Unlock()
}

// Scrolls reports how many times the region was scrolled into view.
func (s *StatusRegion) Scrolls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrolls
}

func (s *StatusRegion) OnChange(fn func(StatusState)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Form groups resettable controls and dispatches submit events.
type Form struct {
	id string

	mu       sync.Mutex
	controls []Resetter
	onSubmit []func(context.Context)
}

func NewForm(id string, controls ...Resetter) *Form {
	return &Form{id: id, controls: controls}
}

func (f *Form) ElementID() string { return f.id }

// Attach adds controls that Reset should clear.
func (f *Form) Attach(controls ...Resetter) {
	f.mu.Lock()
	f.controls = append(f.controls, controls...)
	f.mu.Unlock()
}

// Reset clears every attached control.
func (f *Form) Reset() {
	f.mu.Lock()
	controls := append([]Resetter{}, f.controls...)
	f.mu.Unlock()

	for _, c := range controls {
		c.Reset()
	}
}

func (f *Form) OnSubmit(fn func(context.Context)) {
	f.mu.Lock()
	f.onSubmit = append(f.onSubmit, fn)
	f.mu.Unlock()
}

// RequestSubmit dispatches a submit event to every listener in turn.
func (f *Form) RequestSubmit(ctx context.Context) {
	f.mu.Lock()
	listeners := append([]func(context.Context){}, f.onSubmit...)
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx)
	}
}
