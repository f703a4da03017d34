// Package link defines the bookmark record and the collection it lives in.
//
// A Collection maps url to Link, so a url denotes at most one Link at any
// time. Links are created once and never mutated afterwards; every store
// loads and replaces the whole collection.
package link

import (
	"encoding/json"
	"sort"
	"strings"
)

// Link is a single bookmark.
type Link struct {
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// New builds a Link, trimming surrounding whitespace from every tag.
// Tag order and duplicates are preserved as given.
func New(url, description string, tags []string) Link {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		cleaned = append(cleaned, strings.TrimSpace(t))
	}
	return Link{
		URL:         url,
		Description: description,
		Tags:        cleaned,
	}
}

// MarshalJSON encodes a missing tag list as [] rather than null so the
// persisted shape is stable.
func (l Link) MarshalJSON() ([]byte, error) {
	type plain Link
	p := plain(l)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return json.Marshal(p)
}

// Clone returns a copy that shares no memory with l.
func (l Link) Clone() Link {
	c := l
	c.Tags = make([]string, len(l.Tags))
	copy(c.Tags, l.Tags)
	return c
}

// Equal reports whether two links carry the same fields, tag order included.
func (l Link) Equal(o Link) bool {
	if l.URL != o.URL || l.Description != o.Description || len(l.Tags) != len(o.Tags) {
		return false
	}
	for i := range l.Tags {
		if l.Tags[i] != o.Tags[i] {
			return false
		}
	}
	return true
}

// Collection is the full set of links keyed by url.
type Collection map[string]Link

// Clone deep-copies the collection. A nil collection clones to an empty one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for k, v := range c {
		out[k] = v.Clone()
	}
	return out
}

// Sorted returns the links ordered by url.
func (c Collection) Sorted() []Link {
	out := make([]Link, 0, len(c))
	for _, l := range c {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}

// Tags returns every distinct tag across the collection, lowercased,
// trimmed and sorted. Empty tags are skipped.
func (c Collection) Tags() []string {
	seen := make(map[string]struct{})
	for _, l := range c {
		for _, t := range l.Tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
