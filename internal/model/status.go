package model

// JobStatus represents the lifecycle of a single download job
type JobStatus string

const (
	// JobStatusRunning means the job's goroutine is still executing
	JobStatusRunning JobStatus = "Running"

	// JobStatusSucceeded means the downloader returned normally
	JobStatusSucceeded JobStatus = "Succeeded"

	// JobStatusFailed means validation, dependency lookup or the downloader failed
	JobStatusFailed JobStatus = "Failed"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsFinished returns true if the job reached a terminal state
func (js JobStatus) IsFinished() bool {
	return js == JobStatusSucceeded || js == JobStatusFailed
}

// Phase is the download phase reflected by the latest status event
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseDownloading Phase = "downloading"
	PhaseProcessing  Phase = "processing"
	PhaseFinished    Phase = "finished"
	PhaseFailed      Phase = "failed"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsTerminal returns true if no further events are expected for the current item
func (p Phase) IsTerminal() bool {
	return p == PhaseFinished || p == PhaseFailed
}
