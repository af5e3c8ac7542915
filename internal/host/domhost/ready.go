package domhost

// loaded reports whether a document in readyState has already fired
// DOMContentLoaded.
func loaded(readyState string) bool {
	return readyState == "interactive" || readyState == "complete"
}
