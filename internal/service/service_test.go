package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jpl-au/mystuff/internal/link"
	"github.com/jpl-au/mystuff/internal/service"
	"github.com/jpl-au/mystuff/internal/store"
	"github.com/jpl-au/mystuff/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver records calls and returns canned answers.
type fakeResolver struct {
	desc      string
	tags      []string
	err       error
	descCalls int
	tagCalls  int
	known     []string
}

func (f *fakeResolver) Description(context.Context) (string, error) {
	f.descCalls++
	return f.desc, f.err
}

func (f *fakeResolver) Tags(_ context.Context, known []string) ([]string, error) {
	f.tagCalls++
	f.known = known
	return f.tags, f.err
}

func ptr(s string) *string { return &s }

func TestAdd_NewLinkWithAllFields(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory(nil)
	svc := service.New(m)

	res, err := svc.Add(ctx, "http://a.example", service.AddOptions{
		Tags:        []string{"t1", "t2"},
		Description: ptr("d"),
	})
	require.NoError(t, err)
	assert.True(t, res.Added)
	assert.True(t, link.New("http://a.example", "d", []string{"t1", "t2"}).Equal(res.Link))
	assert.Equal(t, 1, m.Writes())

	links, err := m.Links(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.True(t, res.Link.Equal(links["http://a.example"]))
}

func TestAdd_DuplicateReturnsExistingWithoutWrite(t *testing.T) {
	ctx := context.Background()
	existing := link.New("http://a.example", "d", []string{"t1"})
	m := store.NewMemory(link.Collection{existing.URL: existing})
	r := &fakeResolver{desc: "other", tags: []string{"x"}}
	svc := service.New(m)

	res, err := svc.Add(ctx, "http://a.example", service.AddOptions{
		Tags:        []string{"x"},
		Description: ptr("other"),
		Resolver:    r,
	})
	require.NoError(t, err)
	assert.False(t, res.Added)
	assert.True(t, existing.Equal(res.Link))
	assert.Equal(t, 0, m.Writes())
	assert.Zero(t, r.descCalls)
	assert.Zero(t, r.tagCalls)
}

func TestAdd_ResolverFillsMissingFields(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory(link.Collection{
		"http://b.example": link.New("http://b.example", "", []string{"Rust", " go "}),
		"http://c.example": link.New("http://c.example", "", []string{"go"}),
	})
	r := &fakeResolver{desc: "typed", tags: []string{"go", "web"}}
	svc := service.New(m)

	res, err := svc.Add(ctx, "http://a.example", service.AddOptions{Resolver: r})
	require.NoError(t, err)
	assert.True(t, res.Added)
	assert.Equal(t, "typed", res.Link.Description)
	assert.Equal(t, []string{"go", "web"}, res.Link.Tags)
	assert.Equal(t, 1, r.descCalls)
	assert.Equal(t, 1, r.tagCalls)
	assert.Equal(t, []string{"go", "rust"}, r.known)
}

func TestAdd_ExplicitValuesSkipResolver(t *testing.T) {
	r := &fakeResolver{desc: "unused", tags: []string{"unused"}}
	svc := service.New(store.NewMemory(nil))

	res, err := svc.Add(context.Background(), "http://a.example", service.AddOptions{
		Tags:        []string{"x"},
		Description: ptr(""),
		Resolver:    r,
	})
	require.NoError(t, err)
	assert.Equal(t, "", res.Link.Description)
	assert.Equal(t, []string{"x"}, res.Link.Tags)
	assert.Zero(t, r.descCalls)
	assert.Zero(t, r.tagCalls)
}

func TestAdd_NilResolverLeavesFieldsEmpty(t *testing.T) {
	svc := service.New(store.NewMemory(nil))

	res, err := svc.Add(context.Background(), "http://a.example", service.AddOptions{})
	require.NoError(t, err)
	assert.True(t, res.Added)
	assert.Equal(t, "", res.Link.Description)
	assert.Equal(t, []string{}, res.Link.Tags)
}

func TestAdd_TrimsTags(t *testing.T) {
	svc := service.New(store.NewMemory(nil))

	res, err := svc.Add(context.Background(), "http://a.example", service.AddOptions{
		Tags: []string{" a ", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Link.Tags)
}

func TestAdd_KeepsExistingLinks(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory(link.Collection{
		"http://b.example": link.New("http://b.example", "b", nil),
	})
	svc := service.New(m)

	_, err := svc.Add(ctx, "http://a.example", service.AddOptions{Description: ptr("a")})
	require.NoError(t, err)

	links, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "http://a.example", links[0].URL)
	assert.Equal(t, "http://b.example", links[1].URL)
}

func TestAdd_EmptyURL(t *testing.T) {
	m := store.NewMemory(nil)
	_, err := service.New(m).Add(context.Background(), "", service.AddOptions{Tags: []string{"t"}})
	assert.ErrorIs(t, err, validate.ErrInvalidURL)
	assert.Zero(t, m.Writes())
}

func TestAdd_AcceptsAnyNonEmptyInput(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		tags     []string
		wantTags []string
	}{
		{"blank tag kept", "http://a.example", []string{"t1", " "}, []string{"t1", ""}},
		{"whitespace url", "  ", []string{"t"}, []string{"t"}},
		{"line break in url", "http://a.example/\nx", []string{"t"}, []string{"t"}},
		{"quote in tag", "http://a.example", []string{`say "hi"`}, []string{`say "hi"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := store.NewLocal(t.TempDir())
			require.NoError(t, err)
			svc := service.New(s)

			res, err := svc.Add(context.Background(), tt.url, service.AddOptions{
				Tags:        tt.tags,
				Description: ptr("desc"),
			})
			require.NoError(t, err)
			assert.True(t, res.Added)
			assert.Equal(t, tt.url, res.Link.URL)
			assert.Equal(t, tt.wantTags, res.Link.Tags)

			// The record survives a reload from disk.
			links, err := svc.List(context.Background())
			require.NoError(t, err)
			require.Len(t, links, 1)
			assert.True(t, res.Link.Equal(links[0]))
		})
	}
}

func TestAdd_ResolverError(t *testing.T) {
	boom := errors.New("boom")
	m := store.NewMemory(nil)

	_, err := service.New(m).Add(context.Background(), "http://a.example", service.AddOptions{
		Resolver: &fakeResolver{err: boom},
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, m.Writes())
}

func TestAdd_StorageReadError(t *testing.T) {
	s, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, writeFile(s.Path(), "{broken"))

	_, err = service.New(s).Add(context.Background(), "http://a.example", service.AddOptions{})
	assert.ErrorIs(t, err, store.ErrStorageRead)
}

func TestAdd_ThenReopenLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := store.NewLocal(dir)
	require.NoError(t, err)
	_, err = service.New(s).Add(ctx, "http://a.example", service.AddOptions{
		Tags:        []string{"t"},
		Description: ptr("d"),
	})
	require.NoError(t, err)

	s2, err := store.NewLocal(dir)
	require.NoError(t, err)
	links, err := service.New(s2).List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.True(t, link.New("http://a.example", "d", []string{"t"}).Equal(links[0]))
}

func TestList_Empty(t *testing.T) {
	links, err := service.New(store.NewMemory(nil)).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestList_SortedByURL(t *testing.T) {
	m := store.NewMemory(link.Collection{
		"http://c.example": link.New("http://c.example", "", nil),
		"http://a.example": link.New("http://a.example", "", nil),
		"http://b.example": link.New("http://b.example", "", nil),
	})

	links, err := service.New(m).List(context.Background())
	require.NoError(t, err)
	var urls []string
	for _, l := range links {
		urls = append(urls, l.URL)
	}
	assert.Equal(t, []string{"http://a.example", "http://b.example", "http://c.example"}, urls)
}

func TestTags(t *testing.T) {
	m := store.NewMemory(link.Collection{
		"http://a.example": link.New("http://a.example", "", []string{"Go", "cli"}),
		"http://b.example": link.New("http://b.example", "", []string{"go", "web"}),
	})

	tags, err := service.New(m).Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "go", "web"}, tags)
}
