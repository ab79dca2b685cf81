package contactform

import (
	"regexp"
	"strings"

	"github.com/osa911/formrelay/internal/form"
)

// EmailPattern is the loose local@domain.tld check used for the email field.
// Any Unicode space, vertical tab or BOM counts as whitespace, as in browsers.
var EmailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// EmailProblem classifies an email value.
type EmailProblem int

const (
	EmailOK EmailProblem = iota
	EmailMissing
	EmailMalformed
)

// CheckEmail classifies a raw email value after trimming.
func CheckEmail(value string) EmailProblem {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return EmailMissing
	case !EmailPattern.MatchString(v):
		return EmailMalformed
	default:
		return EmailOK
	}
}

// CheckRequired reports whether a raw value has non-whitespace content.
func CheckRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// text returns the value that will be relayed for a free-text field: the
// sanitize hook applied, then trimmed.
func (c *Controller) text(in *form.Input) string {
	if in == nil {
		return ""
	}
	v := in.Value()
	if c.cfg.Sanitize != nil {
		v = c.cfg.Sanitize(v)
	}
	return strings.TrimSpace(v)
}

// FieldError is one failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func markInvalid(in *form.Input, slot *form.ErrorSlot, text string) {
	if in != nil {
		in.Classes.Add(ClassInvalid)
	}
	if slot != nil {
		slot.SetText(text)
	}
}

func markValid(in *form.Input, slot *form.ErrorSlot) {
	if in != nil {
		in.Classes.Remove(ClassInvalid)
	}
	if slot != nil {
		slot.SetText("")
	}
}

// validateRequired checks a required text field. A field absent from the
// page counts as valid.
func (c *Controller) validateRequired(in *form.Input, slot *form.ErrorSlot, msg string) *FieldError {
	if in == nil {
		return nil
	}
	if !CheckRequired(c.text(in)) {
		markInvalid(in, slot, msg)
		return &FieldError{Field: in.ElementID(), Message: msg}
	}
	markValid(in, slot)
	return nil
}

func (c *Controller) validateName() *FieldError {
	if c.cfg.NameMode == NameSingle {
		return c.validateRequired(c.name, c.nameErr, c.loc.T(MsgNameRequired, nil))
	}

	first, last := c.text(c.first), c.text(c.last)

	if first == "" || last == "" {
		msg := c.loc.T(MsgFullNameRequired, nil)
		if first == "" && c.first != nil {
			c.first.Classes.Add(ClassInvalid)
		}
		if last == "" && c.last != nil {
			c.last.Classes.Add(ClassInvalid)
		}
		if c.nameErr != nil {
			c.nameErr.SetText(msg)
		}
		return &FieldError{Field: c.cfg.IDs.Name, Message: msg}
	}

	if c.first != nil {
		c.first.Classes.Remove(ClassInvalid)
	}
	if c.last != nil {
		c.last.Classes.Remove(ClassInvalid)
	}
	if c.nameErr != nil {
		c.nameErr.SetText("")
	}
	return nil
}

func (c *Controller) validateEmail() *FieldError {
	if c.email == nil {
		return nil
	}

	var msg string
	switch CheckEmail(c.email.Value()) {
	case EmailMissing:
		msg = c.loc.T(MsgEmailRequired, nil)
	case EmailMalformed:
		msg = c.loc.T(MsgEmailInvalid, nil)
	default:
		markValid(c.email, c.emailErr)
		return nil
	}

	markInvalid(c.email, c.emailErr, msg)
	return &FieldError{Field: c.email.ElementID(), Message: msg}
}

func (c *Controller) validateMessage() *FieldError {
	return c.validateRequired(c.message, c.messageErr, c.loc.T(MsgMessageRequired, nil))
}

// Validate runs every field check, showing errors inline, and returns the
// failures in field order. All checks run even after the first failure.
func (c *Controller) Validate() []FieldError {
	var errs []FieldError
	for _, check := range []func() *FieldError{c.validateName, c.validateEmail, c.validateMessage} {
		if fe := check(); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}
