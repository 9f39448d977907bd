package domain

// AnalysisRequest is the ephemeral per-call input to the pipeline.
type AnalysisRequest struct {
	Text     string
	Identity Identity
}

// ClauseSet holds the extracted spans per clause category. Slices are
// always non-nil so every category appears in the serialized result.
type ClauseSet struct {
	PaymentTerms         []string `json:"paymentTerms"`
	Termination          []string `json:"termination"`
	Liability            []string `json:"liability"`
	IntellectualProperty []string `json:"intellectualProperty"`
	AutoRenewal          []string `json:"autoRenewal"`
	GoverningLaw         []string `json:"governingLaw"`
	Insurance            []string `json:"insurance"`
	Dates                []string `json:"dates"`
}

type Jurisdiction struct {
	DetectedStates []string `json:"detectedStates"`
	ApprovedStates []string `json:"approvedStates"`
}

type SummarySource string

const (
	SummaryRemote   SummarySource = "remote"
	SummaryFallback SummarySource = "fallback"
)

// Summary is the tagged summarization outcome. The public contract is
// just the text; the source records which path produced it.
type Summary struct {
	Text   string
	Source SummarySource
}

// AnalysisResult is immutable once produced and is persisted verbatim
// under its cache key.
type AnalysisResult struct {
	Summary      string       `json:"summary"`
	RedFlags     []string     `json:"redFlags"`
	Clauses      ClauseSet    `json:"clauses"`
	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Timestamp    string       `json:"timestamp"`
}
