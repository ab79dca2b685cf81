package contactform

import "github.com/osa911/formrelay/internal/form"

// Values are raw field contents used to populate a page.
type Values struct {
	Name       string
	FirstName  string
	LastName   string
	Email      string
	Message    string
	Newsletter bool
}

// NewDocument builds the standard contact page for the given name mode and
// fills it with v. Transports that have no real page (HTTP API, CLI) bind
// the controller to this.
func NewDocument(ids IDs, mode NameMode, v Values) *form.Document {
	if ids == (IDs{}) {
		ids = DefaultIDs()
	}

	f := form.NewForm(ids.Form)
	doc := form.NewDocument(f)

	addInput := func(id, value string) {
		in := form.NewInput(id, value)
		f.Attach(in)
		doc.Add(in)
	}

	if mode == NameSplit {
		addInput(ids.FirstName, v.FirstName)
		addInput(ids.LastName, v.LastName)
	} else {
		addInput(ids.Name, v.Name)
	}
	addInput(ids.Email, v.Email)
	addInput(ids.Message, v.Message)

	news := form.NewCheckbox(ids.Newsletter, v.Newsletter)
	f.Attach(news)

	doc.Add(
		news,
		form.NewErrorSlot(ErrorSlotID(ids.Name)),
		form.NewErrorSlot(ErrorSlotID(ids.Email)),
		form.NewErrorSlot(ErrorSlotID(ids.Message)),
		form.NewButton(ids.Button),
		form.NewStatusRegion(ids.Status, ClassStatus),
	)
	return doc
}
