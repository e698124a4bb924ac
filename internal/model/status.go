package model

// RequestState is the lifecycle of a single generation request.
// Every request starts and ends in RequestIdle.
type RequestState string

const (
	RequestIdle       RequestState = "Idle"
	RequestRequesting RequestState = "Requesting"
)

// String returns the string representation of RequestState
func (rs RequestState) String() string {
	return string(rs)
}

// TaskStatus represents the status of an asset download task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but the fetch has not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means bytes are being received
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCompleted means the file was saved
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the fetch or the save failed
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusDownloading
}

// IsFinished returns true if the task is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
