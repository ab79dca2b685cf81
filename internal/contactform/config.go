package contactform

import (
	"fmt"
	"strings"
	"time"

	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/relay"
)

// CSS state classes shared with the page stylesheet.
const (
	ClassInvalid       = "error"
	ClassStatus        = "form-status"
	ClassStatusSuccess = "success"
	ClassStatusError   = "error"
)

// DefaultStatusClearDelay is how long a success message stays visible.
const DefaultStatusClearDelay = 10 * time.Second

// DefaultSubject is the relay email subject when none is configured.
const DefaultSubject = "New Contact Form Submission"

// NameMode selects how the sender's name is collected.
type NameMode string

const (
	// NameSingle uses one "name" field.
	NameSingle NameMode = "single"
	// NameSplit uses "firstName" and "lastName" joined with a space.
	NameSplit NameMode = "split"
)

// ParseNameMode accepts "single" or "split", case-insensitively.
func ParseNameMode(s string) (NameMode, error) {
	switch NameMode(strings.ToLower(strings.TrimSpace(s))) {
	case NameSingle, "":
		return NameSingle, nil
	case NameSplit:
		return NameSplit, nil
	default:
		return "", fmt.Errorf("unknown name mode %q (want single or split)", s)
	}
}

// IDs are the element identifiers the controller binds to.
type IDs struct {
	Form       string
	Button     string
	Status     string
	Name       string
	FirstName  string
	LastName   string
	Email      string
	Message    string
	Newsletter string
}

// DefaultIDs matches the contact page markup.
func DefaultIDs() IDs {
	return IDs{
		Form:       "contactForm",
		Button:     "submitBtn",
		Status:     "formStatus",
		Name:       "name",
		FirstName:  "firstName",
		LastName:   "lastName",
		Email:      "email",
		Message:    "message",
		Newsletter: "newsletter",
	}
}

// ErrorSlotID names the error text slot of a field.
func ErrorSlotID(field string) string {
	return field + "Error"
}

// Scheduler runs f once after d. It exists so tests can drive the status
// auto-clear without sleeping.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Config wires a controller to its page and collaborators.
type Config struct {
	IDs      IDs
	NameMode NameMode

	// Sender delivers payloads to the relay. Required.
	Sender relay.Sender
	// OwnerEmail is quoted in the apology shown on transport failures.
	OwnerEmail string
	// Subject becomes the relay's _subject field.
	Subject string

	StatusClearDelay time.Duration
	Scheduler        Scheduler
	Localizer        *locale.Localizer
	// Sanitize, when set, is applied to the trimmed name and message.
	Sanitize func(string) string
	Logger   *logging.Logger
}

func (c *Config) applyDefaults() {
	if c.IDs == (IDs{}) {
		c.IDs = DefaultIDs()
	}
	if c.NameMode == "" {
		c.NameMode = NameSingle
	}
	if c.Subject == "" {
		c.Subject = DefaultSubject
	}
	if c.StatusClearDelay <= 0 {
		c.StatusClearDelay = DefaultStatusClearDelay
	}
	if c.Scheduler == nil {
		c.Scheduler = realScheduler{}
	}
	if c.Localizer == nil {
		c.Localizer = locale.English()
	}
	if c.Logger == nil {
		c.Logger = logging.GetGlobalLogger()
	}
}
