package mailer

// Template names understood by the worker.
const (
	TemplatePasswordReset       = "password_reset"
	TemplateAccountConfirmation = "account_confirmation"
	TemplateDealershipDecision  = "dealership_decision"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The worker renders Template with Data; Subject/Text/HTML act as overrides
// for pre-rendered messages.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
