package resume

// ProcessingStatus is the ingestion state of a resume record.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "Pending"
	StatusProcessing ProcessingStatus = "Processing"
	StatusCompleted  ProcessingStatus = "Completed"
	StatusFailed     ProcessingStatus = "Failed"
)

var statusMessages = map[ProcessingStatus]string{
	StatusPending:    "Resume is queued for parsing",
	StatusProcessing: "Parsing resume content...",
	StatusCompleted:  "Resume parsed successfully",
	StatusFailed:     "Failed to parse resume",
}

// Message is the user-facing description of the status.
func (s ProcessingStatus) Message() string {
	if m, ok := statusMessages[s]; ok {
		return m
	}
	return "Unknown status"
}

// Terminal reports whether no further transition is expected from s.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
