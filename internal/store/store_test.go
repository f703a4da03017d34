package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/mystuff/internal/link"
	"github.com/jpl-au/mystuff/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() link.Collection {
	return link.Collection{
		"http://a.example": link.New("http://a.example", "first", []string{"t1", "t2"}),
		"http://b.example": link.New("http://b.example", "", nil),
		"http://c.example": link.New("http://c.example", "unicode ✓ \"quoted\"\nmultiline", []string{"Go"}),
	}
}

// backends returns a fresh instance of every backend, each rooted in its own
// temp directory.
func backends(t *testing.T) map[string]store.DataStore {
	t.Helper()

	local, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)
	sqlite, err := store.NewSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]store.DataStore{
		"jsonl":  local,
		"sqlite": sqlite,
		"memory": store.NewMemory(nil),
	}
}

func assertSame(t *testing.T, want, got link.Collection) {
	t.Helper()
	require.Len(t, got, len(want))
	for k, w := range want {
		g, ok := got[k]
		require.True(t, ok, "missing %s", k)
		assert.True(t, w.Equal(g), "link %s: want %+v, got %+v", k, w, g)
	}
}

func TestDataStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Links(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.SetLinks(ctx, sample()))
			got, err = s.Links(ctx)
			require.NoError(t, err)
			assertSame(t, sample(), got)

			// Replacement is whole-collection, not a merge.
			smaller := link.Collection{"http://z.example": link.New("http://z.example", "z", []string{"x"})}
			require.NoError(t, s.SetLinks(ctx, smaller))
			got, err = s.Links(ctx)
			require.NoError(t, err)
			assertSame(t, smaller, got)

			require.NoError(t, s.SetLinks(ctx, link.Collection{}))
			got, err = s.Links(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestDataStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := sample()
			require.NoError(t, s.SetLinks(ctx, in))

			// Mutating what we passed in or got back must not leak into the store.
			in["http://a.example"].Tags[0] = "mutated"
			delete(in, "http://b.example")

			got, err := s.Links(ctx)
			require.NoError(t, err)
			got["http://a.example"].Tags[1] = "mutated"
			delete(got, "http://c.example")

			again, err := s.Links(ctx)
			require.NoError(t, err)
			assertSame(t, sample(), again)
		})
	}
}

func TestDataStore_RejectsUnreadableRecords(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		links link.Collection
	}{
		{"empty url", link.Collection{"": link.New("", "d", nil)}},
		{"key differs from url", link.Collection{"http://a.example": link.New("http://b.example", "d", nil)}},
	}
	for name, s := range backends(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				require.NoError(t, s.SetLinks(ctx, sample()))

				err := s.SetLinks(ctx, tt.links)
				assert.ErrorIs(t, err, store.ErrStorageWrite)

				// The previous collection is still readable and intact.
				got, err := s.Links(ctx)
				require.NoError(t, err)
				assertSame(t, sample(), got)
			})
		}
	}
}

func TestLocal_InitCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".mystuff")

	s, err := store.NewLocal(dir)
	require.NoError(t, err)

	assert.DirExists(t, dir)
	assert.FileExists(t, s.Path())
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Empty(t, data)

	got, err := s.Links(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocal_InitKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"url":"http://a.example","description":"kept","tags":["x"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.FileName), []byte(content), 0644))

	s, err := store.NewLocal(dir)
	require.NoError(t, err)
	got, err := s.Links(context.Background())
	require.NoError(t, err)
	require.Contains(t, got, "http://a.example")
	assert.Equal(t, "kept", got["http://a.example"].Description)
}

func TestLocal_InitFailure(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := store.NewLocal(filepath.Join(blocker, "data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageInit)
}

func TestLocal_FileFormat(t *testing.T) {
	s, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)

	links := link.Collection{
		"http://b.example": link.New("http://b.example", "b", []string{"t"}),
		"http://a.example": link.New("http://a.example", "a", nil),
	}
	require.NoError(t, s.SetLinks(context.Background(), links))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	want := `{"url":"http://a.example","description":"a","tags":[]}` + "\n" +
		`{"url":"http://b.example","description":"b","tags":["t"]}`
	assert.Equal(t, want, string(data))
}

func TestLocal_SkipsBlankLines(t *testing.T) {
	s, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)

	content := "\n" +
		`{"url":"http://a.example","description":"a","tags":["t"]}` + "\n" +
		"   \n" +
		`{"url":"http://b.example","description":"b"}` + "\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	got, err := s.Links(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{}, got["http://b.example"].Tags)
}

func TestLocal_MalformedRecordFailsWholeRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    string
	}{
		{
			name:    "invalid json",
			content: `{"url":"http://a.example","description":"a","tags":[]}` + "\n" + `{not json`,
			line:    "line 2",
		},
		{
			name:    "missing url",
			content: `{"description":"no url","tags":[]}`,
			line:    "line 1",
		},
		{
			name:    "wrong type",
			content: "\n\n" + `{"url":"http://a.example","tags":"not-a-list"}`,
			line:    "line 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := store.NewLocal(t.TempDir())
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0644))

			got, err := s.Links(context.Background())
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, store.ErrStorageRead)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestLocal_MissingFile(t *testing.T) {
	s, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Remove(s.Path()))

	_, err = s.Links(context.Background())
	assert.ErrorIs(t, err, store.ErrStorageRead)
}

func TestLocal_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewLocal(dir)
	require.NoError(t, err)

	// Removing the directory makes the temp file impossible to create.
	require.NoError(t, os.RemoveAll(dir))

	err = s.SetLinks(context.Background(), sample())
	assert.ErrorIs(t, err, store.ErrStorageWrite)
}

func TestLocal_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewLocal(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetLinks(context.Background(), sample()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, store.FileName, entries[0].Name())
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := store.NewSQLite(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetLinks(ctx, sample()))
	require.NoError(t, s.Close())

	s, err = store.NewSQLite(dir)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Links(ctx)
	require.NoError(t, err)
	assertSame(t, sample(), got)
	assert.FileExists(t, filepath.Join(dir, store.DBFileName))
}

func TestMemory_CountsWrites(t *testing.T) {
	m := store.NewMemory(sample())
	assert.Equal(t, 0, m.Writes())
	require.NoError(t, m.SetLinks(context.Background(), sample()))
	assert.Equal(t, 1, m.Writes())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &store.Local{}, s)

	s, err = store.Open(store.BackendSQLite, dir)
	require.NoError(t, err)
	assert.IsType(t, &store.SQLite{}, s)
	require.NoError(t, s.Close())

	s, err = store.Open(store.BackendMemory, dir)
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, s)

	_, err = store.Open("postgres", dir)
	assert.ErrorIs(t, err, store.ErrUnknownBackend)
}
