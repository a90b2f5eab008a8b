package tui

import "github.com/flicsl/jsonsync/internal/service"

// refreshMsg redraws after the view-model changed outside the program.
type refreshMsg struct{}

type loadedMsg struct {
	result service.LoadResult
	more   bool
	err    error
}

type instanceLoadedMsg struct {
	result service.InstanceResult
	err    error
}

type destroyedMsg struct {
	id  string
	err error
}

type failedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
