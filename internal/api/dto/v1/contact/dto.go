package contact

import "github.com/osa911/formrelay/internal/contactform"

// ContactRequest represents a contact form submission.
// Presence and email format are checked by the form controller so the
// caller gets localized field messages; binding only caps lengths.
type ContactRequest struct {
	Name       string `json:"name" binding:"max=100"`
	FirstName  string `json:"firstName" binding:"max=100"`
	LastName   string `json:"lastName" binding:"max=100"`
	Email      string `json:"email" binding:"max=254"`
	Message    string `json:"message" binding:"max=5000"`
	Newsletter bool   `json:"newsletter"`

	// Honeypot is a hidden field real visitors leave empty.
	Honeypot string `json:"_honey" binding:"max=256"`
}

// Values converts the request into form field contents.
func (r *ContactRequest) Values() contactform.Values {
	return contactform.Values{
		Name:       r.Name,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Message:    r.Message,
		Newsletter: r.Newsletter,
	}
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Message string                `json:"message"`
	Success bool                  `json:"success"`
	Form    *contactform.Snapshot `json:"form,omitempty"`
}

// ValidateResponse reports the field checks without sending anything.
type ValidateResponse struct {
	Valid  bool                              `json:"valid"`
	Fields map[string]contactform.FieldState `json:"fields"`
}
