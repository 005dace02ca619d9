package report

// ValidationError is a precondition failure on user input (no client
// selected, empty account number). Reported synchronously; no network call
// is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// DomainError is a business gating condition, not a failure: the backend
// had no qualifying data for the request. Rendered as an informational
// message, never as an error alert.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string { return e.Reason }

// NoMovementsMessage is the gating message shown when a range has no
// qualifying movements to generate a document from.
const NoMovementsMessage = "No movements in the selected range to generate a document."

// MissingArtifactMessage reports a response that arrived with a body but
// without the document field. Unlike an empty body this is a backend defect,
// so it renders as an error rather than a gating message.
const MissingArtifactMessage = "The server did not return the document in Base64. Verify the /reports/client-movements/pdf endpoint returns { pdfBase64 }."
