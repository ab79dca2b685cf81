package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/formrelay/internal/api/constants"
	"github.com/osa911/formrelay/internal/api/dto/common"
	"github.com/osa911/formrelay/internal/api/dto/v1/contact"
	"github.com/osa911/formrelay/internal/contactform"
	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/relay"
	"github.com/osa911/formrelay/internal/utils"
)

// ContactOptions configures the form each request is bound to.
type ContactOptions struct {
	NameMode         contactform.NameMode
	OwnerEmail       string
	Subject          string
	StatusClearDelay time.Duration
	Sanitize         func(string) string
}

type ContactHandler struct {
	sender  relay.Sender
	catalog *locale.Catalog
	opts    ContactOptions
	logger  *logging.Logger
}

func NewContactHandler(sender relay.Sender, catalog *locale.Catalog, opts ContactOptions) *ContactHandler {
	return &ContactHandler{
		sender:  sender,
		catalog: catalog,
		opts:    opts,
		logger:  logging.GetGlobalLogger(),
	}
}

// Submit fills a contact form from the request, runs the submit cycle and
// reports the resulting form state.
func (h *ContactHandler) Submit(c *gin.Context) {
	req, ok := contactRequest(c)
	if !ok {
		return
	}
	loc := h.localizer(c)

	if req.Honeypot != "" {
		h.logger.Warn("Dropping contact submission with filled honeypot from %s", utils.GetRealIP(c))
		utils.HandleSuccess(c, contact.ContactResponse{
			Message: loc.T(contactform.MsgSendSuccess, nil),
			Success: true,
		})
		return
	}

	ctrl, err := h.bind(req, loc)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact form unavailable")
		return
	}

	outcome, err := ctrl.Submit(c.Request.Context())
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusConflict, common.ErrCodeConflict, "Submission already in progress")
		return
	}

	snap := ctrl.Snapshot()
	switch outcome {
	case contactform.OutcomeSuccess:
		utils.HandleSuccess(c, contact.ContactResponse{
			Message: snap.Status.Text,
			Success: true,
			Form:    &snap,
		})
	case contactform.OutcomeInvalid:
		utils.HandleFailure(c, http.StatusUnprocessableEntity, common.ErrCodeValidation, "Validation failed", fieldErrors(snap))
	case contactform.OutcomeServiceError:
		utils.HandleFailure(c, http.StatusBadGateway, common.ErrCodeRelay, snap.Status.Text, snap)
	default:
		utils.HandleFailure(c, http.StatusServiceUnavailable, common.ErrCodeRelayUnavailable, snap.Status.Text, snap)
	}
}

// Validate runs the field checks without contacting the relay.
func (h *ContactHandler) Validate(c *gin.Context) {
	req, ok := contactRequest(c)
	if !ok {
		return
	}

	ctrl, err := h.bind(req, h.localizer(c))
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact form unavailable")
		return
	}

	errs := ctrl.Validate()
	utils.HandleSuccess(c, contact.ValidateResponse{
		Valid:  len(errs) == 0,
		Fields: ctrl.Snapshot().Fields,
	})
}

func (h *ContactHandler) bind(req *contact.ContactRequest, loc *locale.Localizer) (*contactform.Controller, error) {
	ids := contactform.DefaultIDs()
	doc := contactform.NewDocument(ids, h.opts.NameMode, req.Values())
	ctrl, err := contactform.Bind(doc, contactform.Config{
		IDs:              ids,
		NameMode:         h.opts.NameMode,
		Sender:           h.sender,
		OwnerEmail:       h.opts.OwnerEmail,
		Subject:          h.opts.Subject,
		StatusClearDelay: h.opts.StatusClearDelay,
		Localizer:        loc,
		Sanitize:         h.opts.Sanitize,
		Logger:           h.logger,
	})
	if err != nil {
		return nil, err
	}
	return ctrl, nil
}

func (h *ContactHandler) localizer(c *gin.Context) *locale.Localizer {
	if h.catalog == nil {
		return locale.English()
	}
	return h.catalog.Localizer(c.GetHeader("Accept-Language"))
}

func contactRequest(c *gin.Context) (*contact.ContactRequest, bool) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact data not found in context")
		return nil, false
	}
	req, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid contact data format")
		return nil, false
	}
	return req, true
}

// fieldErrors lists invalid fields in page order.
func fieldErrors(snap contactform.Snapshot) []common.ValidationError {
	ids := contactform.DefaultIDs()
	var out []common.ValidationError
	for _, id := range []string{ids.Name, ids.FirstName, ids.LastName, ids.Email, ids.Message} {
		if fs, ok := snap.Fields[id]; ok && fs.Invalid {
			out = append(out, common.ValidationError{
				Field:   id,
				Message: fs.Error,
			})
		}
	}
	return out
}
