package model

import "time"

// SubmissionStatus is the workflow state of a contact submission.
// Only StatusNew is ever assigned here; later transitions belong to the
// administrative tooling that reads the table.
type SubmissionStatus string

const StatusNew SubmissionStatus = "NEW"

// FormType tags which form on the site produced a submission.
type FormType string

const FormTypePortfolioContact FormType = "PORTFOLIO_CONTACT"

// DefaultSubject is stored when the visitor leaves the subject blank.
const DefaultSubject = "Contato via Portfólio"

// ContactSubmission is a persisted message sent through the portfolio contact form.
type ContactSubmission struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Status    SubmissionStatus `json:"status"`
	FormType  FormType         `json:"form_type"`
	CreatedAt time.Time        `json:"created_at"`
}

// ContactInput is the raw, unvalidated payload of a submission.
// A nil field means the visitor did not send it.
type ContactInput struct {
	Name    *string
	Email   *string
	Subject *string
	Message *string
}
