package models

// OrderSubmission is the parsed-and-trimmed multipart order form. Handlers
// build it from the raw form; the upload service validates it.
type OrderSubmission struct {
	Name      string
	Email     string
	Style     string
	Recipient string
	MainText  string
	Occasion  string

	// Optional fields; empty means absent and is stored as NULL.
	Phone   string
	DueDate string
	Notes   string

	ConsentPortfolio bool

	// PhotoCountHint is the count the customer's form claimed it attached.
	// It is informational only and never enforced.
	PhotoCountHint int

	Photos []PhotoUpload
}

// PhotoUpload is one uploaded file part with its positional caption.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
	Caption     string
}
