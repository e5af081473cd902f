package presentation

import (
	"fmt"

	"propertyfinder/internal/search"
)

// Panel is the content of the visible region. Action names the control the
// user can trigger from the panel, if any.
type Panel struct {
	Title   string
	Message string
	Action  string
}

// RetryAction labels the control that dismisses the error panel.
const RetryAction = "Try Again"

// Welcome is shown at start-up and whenever the input is cleared.
func Welcome() Panel {
	return Panel{
		Title:   "Find your next home",
		Message: `Describe what you are looking for, e.g. "waterfront 3 bedroom".`,
	}
}

// NoResults is shown when a search completes with an empty result set.
func NoResults(query string) Panel {
	return Panel{
		Title: "No properties found",
		Message: fmt.Sprintf(
			"We couldn't find any properties matching %q. Try searching with different keywords.", query),
	}
}

// SearchError is shown for every failure. The diagnostic message is never
// displayed.
func SearchError() Panel {
	return Panel{
		Title:   "Search Error",
		Message: search.GenericMessage,
		Action:  RetryAction,
	}
}
