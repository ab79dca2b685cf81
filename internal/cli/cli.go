package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/osa911/formrelay/internal/api/sanitization"
	"github.com/osa911/formrelay/internal/api/validation"
	"github.com/osa911/formrelay/internal/config"
	"github.com/osa911/formrelay/internal/contactform"
	"github.com/osa911/formrelay/internal/form"
	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/relay"
	"github.com/osa911/formrelay/internal/version"
)

// ErrNotSent is returned when the form was not delivered; the reason has
// already been printed.
var ErrNotSent = errors.New("message not sent")

type formFlags struct {
	name       string
	firstName  string
	lastName   string
	email      string
	message    string
	newsletter bool
	nameMode   string
	lang       string
}

type relayFlags struct {
	owner     string
	relayURL  string
	subject   string
	timeout   time.Duration
	stripHTML bool
}

// NewRootCmd builds the formrelay command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "formrelay",
		Short: "formrelay - contact form submissions from the command line",
		Long: `formrelay fills the contact form from flags, validates it the same way the
website does, and relays it to the site owner through FormSubmit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	newLogger := func(cmd *cobra.Command) *logging.Logger {
		level := "error"
		if verbose {
			level = "debug"
		}
		return logging.NewWriterLogger(cmd.ErrOrStderr(), level)
	}

	rootCmd.AddCommand(newSubmitCmd(newLogger))
	rootCmd.AddCommand(newValidateCmd(newLogger))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command with signal-aware context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func addFormFlags(cmd *cobra.Command, f *formFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "Your name")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "Your first name (split name form)")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "Your last name (split name form)")
	cmd.Flags().StringVar(&f.email, "email", "", "Your email address")
	cmd.Flags().StringVar(&f.message, "message", "", "The message to send")
	cmd.Flags().BoolVar(&f.newsletter, "newsletter", false, "Subscribe to the newsletter")
	cmd.Flags().StringVar(&f.nameMode, "name-mode", "", "single or split (default: CONTACT_NAME_MODE, or split when --first-name/--last-name is given)")
	cmd.Flags().StringVar(&f.lang, "lang", "", "Language for messages, e.g. es or de-CH")
}

func (f *formFlags) mode(cmd *cobra.Command, cfg *config.Config) (contactform.NameMode, error) {
	if f.nameMode != "" {
		return contactform.ParseNameMode(f.nameMode)
	}
	if cmd.Flags().Changed("first-name") || cmd.Flags().Changed("last-name") {
		return contactform.NameSplit, nil
	}
	return contactform.ParseNameMode(cfg.ContactNameMode)
}

func (f *formFlags) values() contactform.Values {
	return contactform.Values{
		Name:       f.name,
		FirstName:  f.firstName,
		LastName:   f.lastName,
		Email:      f.email,
		Message:    f.message,
		Newsletter: f.newsletter,
	}
}

// session is a bound form ready to validate or submit.
type session struct {
	doc  *form.Document
	ctrl *contactform.Controller
}

func openSession(cmd *cobra.Command, f *formFlags, cfg *config.Config, sender relay.Sender, owner string, r *relayFlags, logger *logging.Logger) (*session, error) {
	mode, err := f.mode(cmd, cfg)
	if err != nil {
		return nil, err
	}

	catalog, err := locale.NewCatalog(cfg.LocalesDir)
	if err != nil {
		return nil, err
	}

	ccfg := contactform.Config{
		NameMode:   mode,
		Sender:     sender,
		OwnerEmail: owner,
		Subject:    cfg.ContactSubject,
		Localizer:  catalog.Localizer(f.lang),
		Logger:     logger,
	}
	if r != nil {
		if r.subject != "" {
			ccfg.Subject = r.subject
		}
		ccfg.Sanitize = sanitization.Sanitizer(r.stripHTML || cfg.ContactStripHTML)
	}

	doc := contactform.NewDocument(contactform.DefaultIDs(), mode, f.values())
	ctrl, err := contactform.Bind(doc, ccfg)
	if err != nil {
		return nil, err
	}
	return &session{doc: doc, ctrl: ctrl}, nil
}

func newSubmitCmd(newLogger func(*cobra.Command) *logging.Logger) *cobra.Command {
	var f formFlags
	var r relayFlags

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate the form and send it to the site owner",
		Long: `Validate the contact form and, when every field passes, send it to the
site owner's FormSubmit address.

Example:
  formrelay submit --name "Ada Lovelace" --email ada@example.com --message "Hello"
  formrelay submit --first-name Ada --last-name Lovelace --email ada@example.com --message "Hello" --newsletter`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd)

			owner := r.owner
			if owner == "" {
				owner = cfg.RelayOwnerEmail
			}
			if err := validation.New().Var(owner, "required,relayemail"); err != nil {
				return fmt.Errorf("invalid owner email %q (set --owner or RELAY_OWNER_EMAIL): %s", owner, validation.Describe(err))
			}

			baseURL := r.relayURL
			if baseURL == "" {
				baseURL = cfg.RelayBaseURL
			}
			timeout := cfg.RelayTimeout
			if cmd.Flags().Changed("timeout") {
				timeout = r.timeout
			}
			sender := relay.NewClient(owner, relay.WithBaseURL(baseURL), relay.WithTimeout(timeout))

			s, err := openSession(cmd, &f, cfg, sender, owner, &r, logger)
			if err != nil {
				return err
			}

			// Spinner while the button shows its loading state
			sp := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			sp.Suffix = " Sending..."
			s.doc.Button(contactform.DefaultIDs().Button).OnChange(func(st form.ButtonState) {
				if st.LoadingVisible {
					sp.Start()
				} else {
					sp.Stop()
				}
			})

			outcome, err := s.ctrl.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, s.ctrl.Snapshot(), outcome)
		},
	}

	addFormFlags(cmd, &f)
	cmd.Flags().StringVar(&r.owner, "owner", "", "Site owner's FormSubmit email (default: RELAY_OWNER_EMAIL)")
	cmd.Flags().StringVar(&r.relayURL, "relay-url", "", "FormSubmit AJAX base URL (default: RELAY_BASE_URL)")
	cmd.Flags().StringVar(&r.subject, "subject", "", "Email subject (default: CONTACT_SUBJECT)")
	cmd.Flags().DurationVar(&r.timeout, "timeout", 30*time.Second, "Relay request timeout, 0 to wait indefinitely (default: RELAY_TIMEOUT)")
	cmd.Flags().BoolVar(&r.stripHTML, "strip-html", false, "Remove HTML markup from name and message")
	return cmd
}

func newValidateCmd(newLogger func(*cobra.Command) *logging.Logger) *cobra.Command {
	var f formFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the form fields without sending anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Validation never reaches the relay, so any sender will do.
			sender := relay.NewClient(cfg.RelayOwnerEmail, relay.WithBaseURL(cfg.RelayBaseURL))
			s, err := openSession(cmd, &f, cfg, sender, cfg.RelayOwnerEmail, nil, newLogger(cmd))
			if err != nil {
				return err
			}

			if errs := s.ctrl.Validate(); len(errs) > 0 {
				printFieldErrors(cmd.ErrOrStderr(), s.ctrl.Snapshot())
				return ErrNotSent
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All fields are valid.")
			return nil
		},
	}

	addFormFlags(cmd, &f)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "formrelay version: %s\n", version.Info())
		},
	}
}

func report(cmd *cobra.Command, snap contactform.Snapshot, outcome contactform.Outcome) error {
	switch outcome {
	case contactform.OutcomeSuccess:
		fmt.Fprintln(cmd.OutOrStdout(), snap.Status.Text)
		return nil
	case contactform.OutcomeInvalid:
		printFieldErrors(cmd.ErrOrStderr(), snap)
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), snap.Status.Text)
	}
	return ErrNotSent
}

// printFieldErrors lists invalid fields in page order.
func printFieldErrors(w io.Writer, snap contactform.Snapshot) {
	ids := contactform.DefaultIDs()
	for _, id := range []string{ids.Name, ids.FirstName, ids.LastName, ids.Email, ids.Message} {
		if fs, ok := snap.Fields[id]; ok && fs.Invalid {
			fmt.Fprintf(w, "%s: %s\n", id, fs.Error)
		}
	}
}
