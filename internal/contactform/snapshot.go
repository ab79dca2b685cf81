package contactform

import "github.com/osa911/formrelay/internal/form"

// FieldState is the visible state of one input.
type FieldState struct {
	Value   string `json:"value"`
	Invalid bool   `json:"invalid"`
	Error   string `json:"error,omitempty"`
}

// Snapshot is the visible state of the whole form.
type Snapshot struct {
	State      string                `json:"state"`
	Fields     map[string]FieldState `json:"fields"`
	Newsletter bool                  `json:"newsletter"`
	Button     form.ButtonState      `json:"button"`
	Status     form.StatusState      `json:"status"`
}

// Snapshot captures field values, error markers, the button and the status
// region.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:      c.State().String(),
		Fields:     make(map[string]FieldState),
		Newsletter: c.newsletter != nil && c.newsletter.Checked(),
		Button:     c.button.State(),
		Status:     c.status.State(),
	}

	add := func(in *form.Input, slot *form.ErrorSlot) {
		if in == nil {
			return
		}
		fs := FieldState{
			Value:   in.Value(),
			Invalid: in.Classes.Contains(ClassInvalid),
		}
		if slot != nil {
			fs.Error = slot.Text()
		}
		s.Fields[in.ElementID()] = fs
	}

	add(c.name, c.nameErr)
	add(c.first, c.nameErr)
	add(c.last, c.nameErr)
	add(c.email, c.emailErr)
	add(c.message, c.messageErr)
	return s
}
