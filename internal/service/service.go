// Package service implements the link workflows on top of a store.DataStore.
//
// Each operation loads the whole collection, works on it in memory and, for
// a successful add, writes the whole collection back exactly once. Missing
// metadata for a new link is obtained from a Resolver supplied by the caller,
// so interactive prompting stays at the CLI boundary.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpl-au/mystuff/internal/link"
	"github.com/jpl-au/mystuff/internal/store"
	"github.com/jpl-au/mystuff/internal/validate"
)

// Resolver supplies link metadata the caller did not provide. It is only
// consulted when the url is not already saved.
type Resolver interface {
	// Description returns the description for a new link.
	Description(ctx context.Context) (string, error)

	// Tags returns the tags for a new link. known holds every tag already
	// present in the collection, for autocompletion.
	Tags(ctx context.Context, known []string) ([]string, error)
}

// AddOptions configures an add.
type AddOptions struct {
	Tags        []string // used verbatim (trimmed) when non-empty
	Description *string  // used verbatim when non-nil
	Resolver    Resolver // fills missing fields; nil means leave them empty
}

// Result is the outcome of Add. Added is false for the duplicate branch, in
// which case Link is the previously saved link.
type Result struct {
	Link  link.Link `json:"link"`
	Added bool      `json:"added"`
}

// Service provides the link operations.
type Service struct {
	store store.DataStore
}

// New returns a Service backed by s.
func New(s store.DataStore) *Service {
	return &Service{store: s}
}

// Store returns the underlying data store.
func (s *Service) Store() store.DataStore { return s.store }

// Close closes the underlying store.
func (s *Service) Close() error { return s.store.Close() }

// Add saves a new link for url, or returns the existing one unchanged if url
// is already saved. The duplicate branch performs no write.
func (s *Service) Add(ctx context.Context, url string, opts AddOptions) (Result, error) {
	if err := validate.URL(url); err != nil {
		return Result{}, err
	}

	links, err := s.store.Links(ctx)
	if err != nil {
		return Result{}, err
	}

	if existing, ok := links[url]; ok {
		slog.Debug("link already exists", "url", url)
		return Result{Link: existing, Added: false}, nil
	}

	desc, err := s.description(ctx, opts)
	if err != nil {
		return Result{}, err
	}
	tags, err := s.tags(ctx, opts, links)
	if err != nil {
		return Result{}, err
	}
	l := link.New(url, desc, tags)
	links[l.URL] = l
	if err := s.store.SetLinks(ctx, links); err != nil {
		return Result{}, err
	}

	slog.Debug("added link", "url", l.URL, "tags", l.Tags, "total", len(links))
	return Result{Link: l, Added: true}, nil
}

func (s *Service) description(ctx context.Context, opts AddOptions) (string, error) {
	if opts.Description != nil {
		return *opts.Description, nil
	}
	if opts.Resolver == nil {
		return "", nil
	}
	d, err := opts.Resolver.Description(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve description: %w", err)
	}
	return d, nil
}

func (s *Service) tags(ctx context.Context, opts AddOptions, links link.Collection) ([]string, error) {
	if len(opts.Tags) > 0 {
		return opts.Tags, nil
	}
	if opts.Resolver == nil {
		return nil, nil
	}
	t, err := opts.Resolver.Tags(ctx, links.Tags())
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	return t, nil
}

// List returns every saved link ordered by url.
func (s *Service) List(ctx context.Context) ([]link.Link, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, err
	}
	return links.Sorted(), nil
}

// Tags returns the distinct lowercase tags across all links, sorted.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, err
	}
	return links.Tags(), nil
}
