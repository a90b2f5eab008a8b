package service

import (
	"errors"

	"github.com/flicsl/jsonsync/internal/adapter"
	"github.com/flicsl/jsonsync/internal/store"
)

var (
	// ErrConfiguration is returned when a synchronizer is constructed without
	// a client, a target or a usable trigger. It is the same value the
	// adapter reports for an empty resource path.
	ErrConfiguration = adapter.ErrConfiguration

	// ErrExhaustedPagination is returned by LoadMore once every page is loaded.
	ErrExhaustedPagination = errors.New("all pages are already loaded")

	// ErrInvalidDataProvided wraps every validation rejection of the
	// reference backend.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrRecordNotFound         = store.ErrRecordNotFound
	ErrTemporarilyUnavailable = store.ErrTemporarilyUnavailable
)
