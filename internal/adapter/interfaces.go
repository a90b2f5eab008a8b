// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to a
// json-server style REST backend.
//
// The primary abstraction is [ResourceClient], which decouples the
// synchronizer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPResourceClient]) built on resty.
//
// Every failure a [ResourceClient] reports is a [*RequestError]. Error values
// defined in errors.go are mapped from HTTP status codes by mapHTTPError so
// that callers can use [errors.Is] for transport-agnostic error handling
// (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/flicsl/jsonsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/resource_client_mock.go -package=mock

// ResourceClient performs CRUD operations against one named REST resource.
// The resource path is fixed at construction; implementations hold no other
// state and are safe for concurrent use.
type ResourceClient interface {
	// Path returns the resource path the client is bound to (e.g. "/players").
	Path() string

	// Find fetches one page of the resource. The "textSearch" query key is
	// sent as "q", the "union" key is dropped, every other key is passed
	// verbatim. The window is sent as _start=page*pageSize and
	// _limit=pageSize.
	Find(ctx context.Context, query models.Query, opts models.PageOptions) (models.PageResponse, error)

	// FindOne fetches a single element by id.
	FindOne(ctx context.Context, id string) (models.Item, error)

	// Put upserts item and returns the stored representation.
	Put(ctx context.Context, item models.Item) (models.Item, error)

	// Destroy deletes the element with the given id and returns the decoded
	// acknowledgement body.
	Destroy(ctx context.Context, id string) (models.Ack, error)
}
