package panels

// LogUpdatedMsg is sent when entries were appended to or cleared from the log.
type LogUpdatedMsg struct{}

// StateUpdatedMsg is sent when the code buffer or running flag changed.
type StateUpdatedMsg struct{}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// LoadCaseMsg asks the app to replace the buffer with a built-in case.
type LoadCaseMsg struct {
	Name string
}
