package shared

// RefreshMsg asks the host to redraw after form state changed outside the event loop.
type RefreshMsg struct{}

// CloseHelpMsg hides the help overlay.
type CloseHelpMsg struct{}
