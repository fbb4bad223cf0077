package models

type ProgressEventType string

const (
	ProgressScanStarted     ProgressEventType = "scan_started"
	ProgressDirectoryListed ProgressEventType = "directory_listed"
	ProgressFilesSelected   ProgressEventType = "files_selected"
	ProgressFileFetched     ProgressEventType = "file_fetched"
	ProgressSummarizing     ProgressEventType = "summarizing"
	ProgressResultWritten   ProgressEventType = "result_written"
)

type ProgressEvent struct {
	Type    ProgressEventType
	Message string
	Data    map[string]interface{}
}

// ProgressFunc receives stage notifications. A nil ProgressFunc is valid.
type ProgressFunc func(ProgressEvent)

// Emit calls f when it is set.
func (f ProgressFunc) Emit(t ProgressEventType, data map[string]interface{}) {
	if f == nil {
		return
	}
	f(ProgressEvent{Type: t, Data: data})
}
