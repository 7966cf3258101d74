package mdsdk

type QueryParams struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

type QueryResult struct {
	Answer      string `json:"answer"`
	GapDetected bool   `json:"gap_detected"`
}

type ValidateParams struct {
	Code     string `json:"code"`
	Task     string `json:"task"`
	Category string `json:"category"`
}

type Violation struct {
	Rule          string `json:"rule"`
	Message       string `json:"message"`
	FixSuggestion string `json:"fix_suggestion,omitempty"`
}

type ValidateResult struct {
	Status        string      `json:"status"`
	Violations    []Violation `json:"violations"`
	FixSuggestion string      `json:"fix_suggestion,omitempty"`
}

type ResolveGapParams struct {
	Question string `json:"question"`
	Category string `json:"category"`
}

type ResolveGapResult struct {
	GapDetected    bool   `json:"gap_detected"`
	ResolutionMode string `json:"resolution_mode"`
	Resolution     string `json:"resolution,omitempty"`
	GapID          string `json:"gap_id,omitempty"`
}
