// Package contactform implements the contact form controller: field
// validation on blur and submit, one relay POST per valid submit, and status
// reporting through the page's status region.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osa911/formrelay/internal/form"
	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/relay"
)

var (
	// ErrSubmitInProgress is returned when Submit is called while a previous
	// submission still holds the submit button.
	ErrSubmitInProgress = errors.New("submission already in progress")
	// ErrMissingElement is returned by Bind when a required element is absent.
	ErrMissingElement = errors.New("required form element missing")
	// ErrNoSender is returned by Bind when no relay sender is configured.
	ErrNoSender = errors.New("contact form has no relay sender")
)

// State is the controller's position in the submit cycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Outcome is the result of one submit attempt.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeInvalid
	OutcomeSuccess
	OutcomeServiceError
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSuccess:
		return "success"
	case OutcomeServiceError:
		return "service_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "none"
	}
}

// Controller drives one bound contact form.
type Controller struct {
	cfg Config
	loc *locale.Localizer
	log *logging.Logger

	form   *form.Form
	button *form.Button
	status *form.StatusRegion

	name       *form.Input
	first      *form.Input
	last       *form.Input
	email      *form.Input
	message    *form.Input
	newsletter *form.Checkbox

	nameErr    *form.ErrorSlot
	emailErr   *form.ErrorSlot
	messageErr *form.ErrorSlot

	mu           sync.Mutex
	state        State
	submitting   bool
	pendingClear Timer
	clearGen     uint64
}

// Bind locates the form's elements in doc and registers the blur, input and
// submit listeners. When the form itself is absent it returns (nil, nil).
func Bind(doc *form.Document, cfg Config) (*Controller, error) {
	cfg.applyDefaults()
	ids := cfg.IDs

	f := doc.Form(ids.Form)
	if f == nil {
		return nil, nil
	}
	if cfg.Sender == nil {
		return nil, ErrNoSender
	}

	c := &Controller{
		cfg:        cfg,
		loc:        cfg.Localizer,
		log:        cfg.Logger,
		form:       f,
		button:     doc.Button(ids.Button),
		status:     doc.StatusRegion(ids.Status),
		email:      doc.Input(ids.Email),
		message:    doc.Input(ids.Message),
		newsletter: doc.Checkbox(ids.Newsletter),
		nameErr:    doc.ErrorSlot(ErrorSlotID(ids.Name)),
		emailErr:   doc.ErrorSlot(ErrorSlotID(ids.Email)),
		messageErr: doc.ErrorSlot(ErrorSlotID(ids.Message)),
	}
	if c.button == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingElement, ids.Button)
	}
	if c.status == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingElement, ids.Status)
	}

	if cfg.NameMode == NameSplit {
		c.first = doc.Input(ids.FirstName)
		c.last = doc.Input(ids.LastName)
	} else {
		c.name = doc.Input(ids.Name)
	}

	c.listen()
	return c, nil
}

func (c *Controller) listen() {
	onBlur := func(in *form.Input, check func() *FieldError) {
		if in != nil {
			in.OnBlur(func() { check() })
		}
	}
	onBlur(c.name, c.validateName)
	onBlur(c.first, c.validateName)
	onBlur(c.last, c.validateName)
	onBlur(c.email, c.validateEmail)
	onBlur(c.message, c.validateMessage)

	// Editing only drops the invalid marker; validation waits for blur.
	for _, in := range c.inputs() {
		in := in
		in.OnInput(func() { in.Classes.Remove(ClassInvalid) })
	}

	c.form.OnSubmit(func(ctx context.Context) {
		if _, err := c.Submit(ctx); err != nil {
			c.log.Debug("Contact form submit ignored: %v", err)
		}
	})
}

func (c *Controller) inputs() []*form.Input {
	var out []*form.Input
	for _, in := range []*form.Input{c.name, c.first, c.last, c.email, c.message} {
		if in != nil {
			out = append(out, in)
		}
	}
	return out
}

// State reports where the controller is in the submit cycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Submit runs one submit cycle: clear the status, validate every field, and
// when all pass send exactly one payload to the relay. Relay failures are
// reported through the status region and the returned Outcome; the error is
// only non-nil when the submit was refused outright.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.submitting || c.button.Disabled() {
		c.mu.Unlock()
		return OutcomeNone, ErrSubmitInProgress
	}
	c.submitting = true
	c.state = StateValidating
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.state = StateIdle
		c.mu.Unlock()
	}()

	ctx, span := otel.Tracer("github.com/osa911/formrelay/internal/contactform").Start(ctx, "contactform.Submit")
	defer span.End()

	c.clearStatus()

	if errs := c.Validate(); len(errs) > 0 {
		span.SetAttributes(attribute.String("contact.outcome", OutcomeInvalid.String()))
		c.log.Debug("Contact form rejected: %d invalid field(s)", len(errs))
		return OutcomeInvalid, nil
	}

	outcome := c.send(ctx)
	span.SetAttributes(attribute.String("contact.outcome", outcome.String()))
	return outcome, nil
}

// send performs the Submitting phase. The deferred block restores the button
// on every path, including a panic inside the sender.
func (c *Controller) send(ctx context.Context) (outcome Outcome) {
	c.setState(StateSubmitting)
	c.button.SetLoading(true)

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Contact form submission panicked: %v", r)
			c.showError(c.apology())
			outcome = OutcomeTransportError
		}
		c.button.SetLoading(false)
	}()

	payload := c.payload()
	_, err := c.cfg.Sender.Send(ctx, payload)

	var se *relay.ServiceError
	switch {
	case err == nil:
		c.log.Info("Contact form submitted for %s", payload.Email)
		c.showSuccess(c.loc.T(MsgSendSuccess, nil))
		c.form.Reset()
		return OutcomeSuccess
	case errors.As(err, &se):
		c.log.Error("Form submission error: %v", err)
		msg := se.Message
		if msg == "" {
			msg = c.loc.T(MsgSendFailed, nil)
		}
		c.showError(msg)
		return OutcomeServiceError
	default:
		c.log.Error("Form submission error: %v", err)
		c.showError(c.apology())
		return OutcomeTransportError
	}
}

func (c *Controller) apology() string {
	return c.loc.T(MsgSendApology, map[string]interface{}{"Email": c.cfg.OwnerEmail})
}

// payload builds the relay body from the current field values.
func (c *Controller) payload() *relay.Payload {
	return &relay.Payload{
		Name:       c.composedName(),
		Email:      trimmed(c.email),
		Message:    c.text(c.message),
		Newsletter: c.newsletter != nil && c.newsletter.Checked(),
		Subject:    c.cfg.Subject,
		Captcha:    relay.CaptchaDisabled,
		Template:   relay.TemplateTable,
	}
}

func (c *Controller) composedName() string {
	if c.cfg.NameMode == NameSplit {
		return c.text(c.first) + " " + c.text(c.last)
	}
	return c.text(c.name)
}

func trimmed(in *form.Input) string {
	if in == nil {
		return ""
	}
	return strings.TrimSpace(in.Value())
}
