package mdsdk

// Document is a knowledge base document as the server reports it. Version is
// a server-assigned, monotonically increasing token used for optimistic
// concurrency; the client never mints identifiers or versions.
type Document struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Version  int64  `json:"version"`
}

type CreateDocumentParams struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type UpdateDocumentParams struct {
	Content         string `json:"content"`
	ExpectedVersion int64  `json:"expected_version"`
	ChangeReason    string `json:"change_reason,omitempty"`
}

type docResponse struct {
	Doc *Document `json:"doc"`
}

type docListResponse struct {
	Docs []*Document `json:"docs"`
}

type docVersionResponse struct {
	Version int64 `json:"version"`
}

type versionConflictResponse struct {
	Error          string `json:"error"`
	CurrentVersion int64  `json:"current_version"`
}
