package contactform

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/formrelay/internal/api/sanitization"
	"github.com/osa911/formrelay/internal/form"
	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/relay"
)

const owner = "owner@example.com"

// mockSender records payloads and answers with sendFunc.
type mockSender struct {
	mu       sync.Mutex
	payloads []*relay.Payload
	sendFunc func(ctx context.Context, p *relay.Payload) (*relay.Response, error)
}

func (m *mockSender) Send(ctx context.Context, p *relay.Payload) (*relay.Response, error) {
	m.mu.Lock()
	m.payloads = append(m.payloads, p)
	m.mu.Unlock()
	if m.sendFunc != nil {
		return m.sendFunc(ctx, p)
	}
	return &relay.Response{Success: true}, nil
}

func (m *mockSender) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

// fakeScheduler captures scheduled calls so tests fire them by hand.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// elapse fires every pending timer whose delay is at most d.
func (s *fakeScheduler) elapse(d time.Duration) {
	s.mu.Lock()
	timers := append([]*fakeTimer{}, s.timers...)
	s.mu.Unlock()
	for _, t := range timers {
		if !t.stopped && t.delay <= d {
			t.stopped = true
			t.fn()
		}
	}
}

type fixture struct {
	doc    *form.Document
	ctrl   *Controller
	sender *mockSender
	sched  *fakeScheduler
}

func newFixture(t *testing.T, mode NameMode, v Values) *fixture {
	t.Helper()
	fx := &fixture{
		doc:    NewDocument(DefaultIDs(), mode, v),
		sender: &mockSender{},
		sched:  &fakeScheduler{},
	}
	ctrl, err := Bind(fx.doc, Config{
		NameMode:   mode,
		Sender:     fx.sender,
		OwnerEmail: owner,
		Subject:    "New Contact Form Submission - Test",
		Scheduler:  fx.sched,
		Logger:     logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelDebug),
	})
	require.NoError(t, err)
	require.NotNil(t, ctrl)
	fx.ctrl = ctrl
	return fx
}

func (fx *fixture) status() form.StatusState {
	return fx.doc.StatusRegion("formStatus").State()
}

func validSplit() Values {
	return Values{
		FirstName:  "  Ada ",
		LastName:   " Lovelace  ",
		Email:      " ada@example.com ",
		Message:    "  Hello there  ",
		Newsletter: true,
	}
}

func TestBindWithoutFormDoesNothing(t *testing.T) {
	ctrl, err := Bind(form.NewDocument(form.NewInput("email", "")), Config{Sender: &mockSender{}})
	assert.NoError(t, err)
	assert.Nil(t, ctrl)
}

func TestBindErrors(t *testing.T) {
	_, err := Bind(form.NewDocument(form.NewForm("contactForm")), Config{})
	assert.ErrorIs(t, err, ErrNoSender)

	_, err = Bind(form.NewDocument(form.NewForm("contactForm")), Config{Sender: &mockSender{}})
	assert.ErrorIs(t, err, ErrMissingElement)

	_, err = Bind(form.NewDocument(form.NewForm("contactForm"), form.NewButton("submitBtn")), Config{Sender: &mockSender{}})
	assert.ErrorIs(t, err, ErrMissingElement)
}

func TestRequiredFieldsOnBlur(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", false},
		{"whitespace", "   \t", false},
		{"text", "hi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, NameSingle, Values{Message: "stale"})
			msg := fx.doc.Input("message")
			slot := fx.doc.ErrorSlot("messageError")

			// Start from an invalid state so passing must clear it.
			msg.SetValue("")
			msg.Blur()
			require.Equal(t, "Please enter a message", slot.Text())

			msg.SetValue(tt.value)
			msg.Blur()

			assert.Equal(t, !tt.valid, msg.Classes.Contains(ClassInvalid))
			if tt.valid {
				assert.Empty(t, slot.Text())
			} else {
				assert.Equal(t, "Please enter a message", slot.Text())
			}
		})
	}
}

func TestSingleNameBlur(t *testing.T) {
	fx := newFixture(t, NameSingle, Values{})
	name := fx.doc.Input("name")

	name.Blur()
	assert.True(t, name.Classes.Contains(ClassInvalid))
	assert.Equal(t, "Please enter your name", fx.doc.ErrorSlot("nameError").Text())

	name.SetValue("Ada")
	name.Blur()
	assert.False(t, name.Classes.Contains(ClassInvalid))
	assert.Empty(t, fx.doc.ErrorSlot("nameError").Text())
}

func TestSplitNameMarksOnlyEmptyParts(t *testing.T) {
	fx := newFixture(t, NameSplit, Values{FirstName: "Ada"})
	first, last := fx.doc.Input("firstName"), fx.doc.Input("lastName")

	first.Blur()
	assert.False(t, first.Classes.Contains(ClassInvalid))
	assert.True(t, last.Classes.Contains(ClassInvalid))
	assert.Equal(t, "Please enter your full name", fx.doc.ErrorSlot("nameError").Text())

	last.SetValue("Lovelace")
	last.Blur()
	assert.False(t, last.Classes.Contains(ClassInvalid))
	assert.Empty(t, fx.doc.ErrorSlot("nameError").Text())
}

func TestEmailBlurMessages(t *testing.T) {
	fx := newFixture(t, NameSingle, Values{})
	email, slot := fx.doc.Input("email"), fx.doc.ErrorSlot("emailError")

	email.Blur()
	assert.Equal(t, "Please enter your email", slot.Text())

	email.SetValue("not-an-email")
	email.Blur()
	assert.Equal(t, "Please enter a valid email address", slot.Text())
	assert.True(t, email.Classes.Contains(ClassInvalid))

	email.SetValue("a@b.co")
	email.Blur()
	assert.Empty(t, slot.Text())
	assert.False(t, email.Classes.Contains(ClassInvalid))
}

func TestEditClearsMarkerWithoutRevalidating(t *testing.T) {
	fx := newFixture(t, NameSingle, Values{})
	email := fx.doc.Input("email")

	email.Blur()
	require.True(t, email.Classes.Contains(ClassInvalid))

	email.Edit("still bad")
	assert.False(t, email.Classes.Contains(ClassInvalid))
	assert.Equal(t, "Please enter your email", fx.doc.ErrorSlot("emailError").Text(),
		"slot text stays until the next blur or submit")
}

func TestSubmitInvalidMakesNoRequest(t *testing.T) {
	fx := newFixture(t, NameSplit, Values{Email: "nope"})

	outcome, err := fx.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, outcome)
	assert.Equal(t, 0, fx.sender.calls())

	assert.Equal(t, "Please enter your full name", fx.doc.ErrorSlot("nameError").Text())
	assert.Equal(t, "Please enter a valid email address", fx.doc.ErrorSlot("emailError").Text())
	assert.Equal(t, "Please enter a message", fx.doc.ErrorSlot("messageError").Text())
	assert.Equal(t, form.StatusState{Class: "form-status"}, fx.status())
	assert.False(t, fx.doc.Button("submitBtn").Disabled())
	assert.Equal(t, StateIdle, fx.ctrl.State())
}

func TestSubmitSuccessSplitName(t *testing.T) {
	fx := newFixture(t, NameSplit, validSplit())

	var during form.ButtonState
	var duringState State
	fx.sender.sendFunc = func(ctx context.Context, p *relay.Payload) (*relay.Response, error) {
		during = fx.doc.Button("submitBtn").State()
		duringState = fx.ctrl.State()
		return &relay.Response{Success: true}, nil
	}

	outcome, err := fx.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, outcome)

	require.Equal(t, 1, fx.sender.calls())
	p := fx.sender.payloads[0]
	assert.Equal(t, "Ada Lovelace", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, "Hello there", p.Message)
	assert.True(t, p.Newsletter)
	assert.Equal(t, "New Contact Form Submission - Test", p.Subject)
	assert.Equal(t, "false", p.Captcha)
	assert.Equal(t, "table", p.Template)

	assert.Equal(t, form.ButtonState{Disabled: true, LoadingVisible: true}, during)
	assert.Equal(t, StateSubmitting, duringState)
	assert.Equal(t, form.ButtonState{LabelVisible: true}, fx.doc.Button("submitBtn").State())

	assert.Equal(t, form.StatusState{Class: "form-status success", Text: "Thank you! We will reach out to you via Email."}, fx.status())
	assert.Equal(t, 1, fx.doc.StatusRegion("formStatus").Scrolls())

	for _, id := range []string{"firstName", "lastName", "email", "message"} {
		assert.Empty(t, fx.doc.Input(id).Value(), id)
	}
	assert.False(t, fx.doc.Checkbox("newsletter").Checked())

	fx.sched.elapse(9 * time.Second)
	assert.Equal(t, "form-status success", fx.status().Class)

	fx.sched.elapse(10 * time.Second)
	assert.Equal(t, form.StatusState{Class: "form-status"}, fx.status())
}

func TestSubmitSingleNameWithoutNewsletter(t *testing.T) {
	fx := newFixture(t, NameSingle, Values{Name: " Grace Hopper ", Email: "g@h.io", Message: "hi"})

	_, err := fx.ctrl.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fx.sender.calls())
	assert.Equal(t, "Grace Hopper", fx.sender.payloads[0].Name)
	assert.False(t, fx.sender.payloads[0].Newsletter)
}

func TestSubmitServiceError(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"service message", "X", "X"},
		{"default message", "", "Failed to send message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, NameSplit, validSplit())
			fx.sender.sendFunc = func(ctx context.Context, p *relay.Payload) (*relay.Response, error) {
				return &relay.Response{Message: tt.message}, &relay.ServiceError{Status: 200, Message: tt.message}
			}

			outcome, err := fx.ctrl.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeServiceError, outcome)
			assert.Equal(t, form.StatusState{Class: "form-status error", Text: tt.want}, fx.status())

			assert.Equal(t, "  Ada ", fx.doc.Input("firstName").Value(), "fields are kept")
			assert.True(t, fx.doc.Checkbox("newsletter").Checked())
			assert.False(t, fx.doc.Button("submitBtn").Disabled())
			assert.Empty(t, fx.sched.timers, "errors do not auto-clear")
		})
	}
}

func TestSubmitTransportError(t *testing.T) {
	fx := newFixture(t, NameSplit, validSplit())
	fx.sender.sendFunc = func(ctx context.Context, p *relay.Payload) (*relay.Response, error) {
		return nil, &relay.TransportError{Op: "request", Err: errors.New("connection refused")}
	}

	outcome, err := fx.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeTransportError, outcome)
	assert.Equal(t,
		"Sorry, there was an error sending your message. Please try again or email us directly at owner@example.com",
		fx.status().Text)
	assert.Equal(t, "form-status error", fx.status().Class)
	assert.Equal(t, form.ButtonState{LabelVisible: true}, fx.doc.Button("submitBtn").State())
}

func TestSubmitRecoversFromSenderPanic(t *testing.T) {
	fx := newFixture(t, NameSplit, validSplit())
	fx.sender.sendFunc = func(ctx context.Context, p *relay.Payload) (*relay.Response, error) {
		panic("boom")
	}

	var outcome Outcome
	require.NotPanics(t, func() {
		outcome, _ = fx.ctrl.Submit(context.Background())
	})
	assert.Equal(t, OutcomeTransportError, outcome)
	assert.False(t, fx.doc.Button("submitBtn").Disabled())
	assert.Equal(t, StateIdle, fx.ctrl.State())
}

func TestSubmitRefusedWhileInProgress(t *testing.T) {
	fx := newFixture(t, NameSplit, validSplit())

	entered := make(chan struct{})
	release := make(chan struct{})
	fx.sender.sendFunc = func(ctx context.Context, p *relay.Payload) (*relay.Response, error) {
		close(entered)
		<-release
		return &relay.Response{Success: true}, nil
	}

	done := make(chan Outcome)
	go func() {
		o, _ := fx.ctrl.Submit(context.Background())
		done <- o
	}()

	<-entered
	_, err := fx.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(release)
	assert.Equal(t, OutcomeSuccess, <-done)
	assert.Equal(t, 1, fx.sender.calls())
}

func TestNewSubmitCancelsPendingClear(t *testing.T) {
	fx := newFixture(t, NameSplit, validSplit())

	_, err := fx.ctrl.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, fx.sched.timers, 1)

	// The form was reset, so this attempt fails validation and the old
	// success message must not be cleared later on top of it.
	_, err = fx.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, fx.sched.timers[0].stopped)
}

func TestFormSubmitEventDrivesController(t *testing.T) {
	fx := newFixture(t, NameSplit, validSplit())

	fx.doc.Form("contactForm").RequestSubmit(context.Background())
	assert.Equal(t, 1, fx.sender.calls())
	assert.Equal(t, "form-status success", fx.status().Class)
}

func TestSanitizeHook(t *testing.T) {
	doc := NewDocument(DefaultIDs(), NameSingle, Values{Name: "Ada", Email: "a@b.co", Message: "<b>hi</b>"})
	sender := &mockSender{}
	ctrl, err := Bind(doc, Config{
		Sender:    sender,
		Scheduler: &fakeScheduler{},
		Sanitize:  func(s string) string { return "[" + s + "]" },
		Logger:    logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelError),
	})
	require.NoError(t, err)

	_, err = ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[Ada]", sender.payloads[0].Name)
	assert.Equal(t, "[<b>hi</b>]", sender.payloads[0].Message)
	assert.Equal(t, "a@b.co", sender.payloads[0].Email)
}

func TestStripHTMLChecksRelayedText(t *testing.T) {
	tests := []struct {
		name        string
		mode        NameMode
		values      Values
		wantInvalid []string
	}{
		{
			name:        "markup only",
			mode:        NameSingle,
			values:      Values{Name: "<i></i>", Email: "a@b.co", Message: "<script>x</script>"},
			wantInvalid: []string{"name", "message"},
		},
		{
			name:        "split name part is markup only",
			mode:        NameSplit,
			values:      Values{FirstName: "<b> </b>", LastName: "Lovelace", Email: "a@b.co", Message: "hi"},
			wantInvalid: []string{"firstName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(DefaultIDs(), tt.mode, tt.values)
			sender := &mockSender{}
			ctrl, err := Bind(doc, Config{
				NameMode:  tt.mode,
				Sender:    sender,
				Scheduler: &fakeScheduler{},
				Sanitize:  sanitization.Sanitizer(true),
				Logger:    logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelError),
			})
			require.NoError(t, err)

			outcome, err := ctrl.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeInvalid, outcome)
			assert.Equal(t, 0, sender.calls())

			snap := ctrl.Snapshot()
			for _, id := range tt.wantInvalid {
				assert.True(t, snap.Fields[id].Invalid, id)
			}
			assert.Empty(t, snap.Status.Text)
		})
	}
}

func TestStripHTMLRelaysPlainText(t *testing.T) {
	doc := NewDocument(DefaultIDs(), NameSingle, Values{Name: " <b>Ada</b> ", Email: "a@b.co", Message: "<p>Fish &amp; chips</p>"})
	sender := &mockSender{}
	ctrl, err := Bind(doc, Config{
		Sender:    sender,
		Scheduler: &fakeScheduler{},
		Sanitize:  sanitization.Sanitizer(true),
		Logger:    logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelError),
	})
	require.NoError(t, err)

	outcome, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, outcome)
	assert.Equal(t, "Ada", sender.payloads[0].Name)
	assert.Equal(t, "Fish & chips", sender.payloads[0].Message)
}

func TestLocalizedMessages(t *testing.T) {
	catalog, err := locale.NewCatalog("")
	require.NoError(t, err)
	require.NoError(t, catalog.AddMessages("es",
		&i18n.Message{ID: MsgEmailRequired.ID, Other: "Introduce tu correo"},
	))

	doc := NewDocument(DefaultIDs(), NameSingle, Values{})
	ctrl, err := Bind(doc, Config{
		Sender:    &mockSender{},
		Localizer: catalog.Localizer("es"),
		Logger:    logging.NewWriterLogger(&bytes.Buffer{}, logging.LevelError),
	})
	require.NoError(t, err)

	errs := ctrl.Validate()
	require.Len(t, errs, 3)
	assert.Equal(t, FieldError{Field: "email", Message: "Introduce tu correo"}, errs[1])
	assert.Equal(t, "Please enter your name", errs[0].Message, "untranslated messages fall back to English")
}

func TestSnapshot(t *testing.T) {
	fx := newFixture(t, NameSplit, Values{FirstName: "Ada", Email: "x"})
	fx.ctrl.Validate()

	s := fx.ctrl.Snapshot()
	assert.Equal(t, "idle", s.State)
	assert.Equal(t, FieldState{Value: "Ada", Invalid: false, Error: "Please enter your full name"}, s.Fields["firstName"])
	assert.True(t, s.Fields["lastName"].Invalid)
	assert.Equal(t, "Please enter a valid email address", s.Fields["email"].Error)
	assert.True(t, s.Button.LabelVisible)
	assert.NotContains(t, s.Fields, "name")
}
