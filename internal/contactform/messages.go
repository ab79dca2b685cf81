package contactform

import "github.com/nicksnyder/go-i18n/v2/i18n"

// User-facing texts. The English defaults are the source strings; other
// languages come from locale files keyed by these IDs.
var (
	MsgNameRequired = &i18n.Message{
		ID:    "ContactNameRequired",
		Other: "Please enter your name",
	}
	MsgFullNameRequired = &i18n.Message{
		ID:    "ContactFullNameRequired",
		Other: "Please enter your full name",
	}
	MsgEmailRequired = &i18n.Message{
		ID:    "ContactEmailRequired",
		Other: "Please enter your email",
	}
	MsgEmailInvalid = &i18n.Message{
		ID:    "ContactEmailInvalid",
		Other: "Please enter a valid email address",
	}
	MsgMessageRequired = &i18n.Message{
		ID:    "ContactMessageRequired",
		Other: "Please enter a message",
	}
	MsgSendSuccess = &i18n.Message{
		ID:    "ContactSendSuccess",
		Other: "Thank you! We will reach out to you via Email.",
	}
	MsgSendFailed = &i18n.Message{
		ID:    "ContactSendFailed",
		Other: "Failed to send message",
	}
	MsgSendApology = &i18n.Message{
		ID:    "ContactSendApology",
		Other: "Sorry, there was an error sending your message. Please try again or email us directly at {{.Email}}",
	}
)

// Messages lists every message, used to export translation templates.
func Messages() []*i18n.Message {
	return []*i18n.Message{
		MsgNameRequired,
		MsgFullNameRequired,
		MsgEmailRequired,
		MsgEmailInvalid,
		MsgMessageRequired,
		MsgSendSuccess,
		MsgSendFailed,
		MsgSendApology,
	}
}
