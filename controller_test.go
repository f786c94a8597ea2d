package favcurator

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/n2code/favcurator/internal/asset"
	"github.com/n2code/favcurator/internal/board"
)

type fakeResolver struct {
	folders  map[asset.Ref]bool
	existing map[asset.Ref]bool
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{folders: map[asset.Ref]bool{}, existing: map[asset.Ref]bool{}}
}

func (r *fakeResolver) file(refs ...asset.Ref) *fakeResolver {
	for _, ref := range refs {
		r.existing[ref] = true
	}
	return r
}

func (r *fakeResolver) folder(refs ...asset.Ref) *fakeResolver {
	for _, ref := range refs {
		r.existing[ref] = true
		r.folders[ref] = true
	}
	return r
}

func (r *fakeResolver) DisplayName(ref asset.Ref) string { return path.Base(string(ref)) }
func (r *fakeResolver) IsFolder(ref asset.Ref) bool { return r.folders[ref] }
func (r *fakeResolver) PathOf(ref asset.Ref) string { return "/project/" + string(ref) }
func (r *fakeResolver) IsValid(ref asset.Ref) bool { return r.existing[ref] }

type memoryPersistence struct {
	saved *board.Collection
	saves int
	fail  error
}

func (m *memoryPersistence) Load() (*board.Collection, error) {
	if m.saved == nil {
		return board.NewCollection(), nil
	}
	return m.saved, nil
}

func (m *memoryPersistence) Save(snapshot *board.Collection) error {
	if m.fail != nil {
		return m.fail
	}
	m.saved = snapshot
	m.saves++
	return nil
}

func attach(t *testing.T, resolver asset.Resolver, persistence board.Persistence) Favcurator {
	t.Helper()
	handle, err := Attach("/project", resolver, persistence, CreateConfig{Verbosity: QuietMode})
	require.NoError(t, err)
	return handle
}

func refsOf(listing PageListing) (refs []asset.Ref) {
	for _, e := range listing.Entries {
		refs = append(refs, e.Ref)
	}
	return
}

func TestDropSkipsDuplicates(t *testing.T) {
	f := attach(t, newFakeResolver().file("A", "B"), &memoryPersistence{})

	require.Equal(t, 2, f.HandleDrop([]asset.Ref{"A", "B"}))
	require.Equal(t, 0, f.HandleDrop([]asset.Ref{"A"}))
	require.Equal(t, []asset.Ref{"A", "B"}, refsOf(f.CurrentPage()))
	require.True(t, f.HasUnsavedChanges())
}

func TestDropNormalizesRefsAndSkipsForeignOnes(t *testing.T) {
	storage := board.NewFileStorage(filepath.Join(t.TempDir(), "board.db"))
	f := attach(t, newFakeResolver().file("docs/x.md"), storage)

	added := f.HandleDrop([]asset.Ref{"docs/x.md", "docs/./x.md", "", "../x.md", "/etc/passwd", "docs/../docs/y.md"})
	require.Equal(t, 2, added)
	require.Equal(t, []asset.Ref{"docs/x.md", "docs/y.md"}, refsOf(f.CurrentPage()))
	require.NoError(t, f.PersistChanges())

	reloaded := attach(t, newFakeResolver(), storage)
	require.Equal(t, []asset.Ref{"docs/x.md", "docs/y.md"}, refsOf(reloaded.CurrentPage()))
}

type closingPersistence struct {
	memoryPersistence
	loadErr error
	closed  int
}

func (c *closingPersistence) Load() (*board.Collection, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	return c.memoryPersistence.Load()
}

func (c *closingPersistence) Close() error {
	c.closed++
	return nil
}

func TestAttachedPersistenceIsClosed(t *testing.T) {
	persistence := &closingPersistence{}
	f := attach(t, newFakeResolver(), persistence)
	f.HandleDrop([]asset.Ref{"A"})
	require.NoError(t, f.Close())
	require.Equal(t, 1, persistence.saves)
	require.Equal(t, 1, persistence.closed)

	require.NoError(t, f.Close())
	require.Equal(t, 1, persistence.closed, "closing twice releases once")
}

func TestFailedAttachReleasesPersistence(t *testing.T) {
	persistence := &closingPersistence{loadErr: errors.New("corrupt")}
	_, err := Attach("/project", newFakeResolver(), persistence, CreateConfig{Verbosity: QuietMode})
	require.Error(t, err)
	require.Equal(t, 1, persistence.closed)
}

func TestActivateFolderNavigatesAndFileSelects(t *testing.T) {
	f := attach(t, newFakeResolver().folder("levels").file("levels/boss.tscn"), &memoryPersistence{})
	f.HandleDrop([]asset.Ref{"levels", "levels/boss.tscn"})

	activation, err := f.HandleActivate(0)
	require.NoError(t, err)
	require.Equal(t, Navigate, activation.Kind)
	require.Equal(t, "/project/levels", activation.Path)

	activation, err = f.HandleActivate(1)
	require.NoError(t, err)
	require.Equal(t, Select, activation.Kind)
	require.Equal(t, asset.Ref("levels/boss.tscn"), activation.Ref)

	_, err = f.HandleActivate(2)
	require.ErrorIs(t, err, board.ErrIndexOutOfRange)
}

func TestActivateDoesNotChangeBoard(t *testing.T) {
	persistence := &memoryPersistence{}
	f := attach(t, newFakeResolver().file("A"), persistence)
	f.HandleDrop([]asset.Ref{"A"})
	require.NoError(t, f.PersistChanges())

	_, err := f.HandleActivate(0)
	require.NoError(t, err)
	require.False(t, f.HasUnsavedChanges())
}

func TestRemoveRequest(t *testing.T) {
	f := attach(t, newFakeResolver(), &memoryPersistence{})
	f.HandleDrop([]asset.Ref{"A", "B", "C"})

	removed, err := f.HandleRemoveRequest(1)
	require.NoError(t, err)
	require.Equal(t, asset.Ref("B"), removed)
	require.Equal(t, []asset.Ref{"A", "C"}, refsOf(f.CurrentPage()))

	_, err = f.HandleRemoveRequest(5)
	require.ErrorIs(t, err, board.ErrIndexOutOfRange)
	require.Equal(t, []asset.Ref{"A", "C"}, refsOf(f.CurrentPage()))
}

func TestReorder(t *testing.T) {
	f := attach(t, newFakeResolver(), &memoryPersistence{})
	f.HandleDrop([]asset.Ref{"A", "B", "C"})

	require.NoError(t, f.HandleReorder(0, 2))
	require.Equal(t, []asset.Ref{"B", "C", "A"}, refsOf(f.CurrentPage()))
	require.ErrorIs(t, f.HandleReorder(0, 3), board.ErrIndexOutOfRange)
	require.Equal(t, []asset.Ref{"B", "C", "A"}, refsOf(f.CurrentPage()))
}

func TestPageNavigationGrowsBoardAndGoToDoesNot(t *testing.T) {
	f := attach(t, newFakeResolver(), &memoryPersistence{})

	f.HandlePageNav(Previous)
	require.Equal(t, 0, f.CurrentPage().Position)

	f.HandlePageNav(Next)
	require.Equal(t, 2, f.PageCount())
	require.Equal(t, 1, f.CurrentPage().Position)

	require.ErrorIs(t, f.HandleGoToPage(2), board.ErrIndexOutOfRange)
	require.Equal(t, 2, f.PageCount())
	require.NoError(t, f.HandleGoToPage(0))
	require.Equal(t, 0, f.CurrentPage().Position)
}

func TestDeleteLastPageIsRefused(t *testing.T) {
	f := attach(t, newFakeResolver(), &memoryPersistence{})
	f.HandleDrop([]asset.Ref{"A"})

	err := f.HandleDeletePage()
	require.ErrorIs(t, err, board.ErrInvalidOperation)
	require.Equal(t, []asset.Ref{"A"}, refsOf(f.CurrentPage()))

	f.HandlePageNav(Next)
	require.NoError(t, f.HandleDeletePage())
	require.Equal(t, 1, f.PageCount())
	require.Equal(t, []asset.Ref{"A"}, refsOf(f.CurrentPage()))
}

func TestPagesSummary(t *testing.T) {
	f := attach(t, newFakeResolver(), &memoryPersistence{})
	f.HandleDrop([]asset.Ref{"A", "B"})
	f.HandleRenamePage("Sprites")
	f.HandlePageNav(Next)

	require.Equal(t, []PageSummary{
		{Position: 0, Title: "Sprites", Count: 2},
		{Position: 1, Title: "Page 2", Count: 0, Current: true},
	}, f.Pages())
}

func TestListingDescribesEntries(t *testing.T) {
	f := attach(t, newFakeResolver().folder("art").file("docs/plan.2D4X8R.ndoc.md"), &memoryPersistence{})
	f.HandleDrop([]asset.Ref{"art", "docs/plan.2D4X8R.ndoc.md", "gone.png"})

	listing := f.CurrentPage()
	require.Equal(t, "Page 1", listing.Title)
	require.Equal(t, 1, listing.PageCount)
	require.Len(t, listing.Entries, 3)
	require.True(t, listing.Entries[0].Folder)
	require.True(t, listing.Entries[0].Valid)
	require.Equal(t, "plan.2D4X8R.ndoc.md", listing.Entries[1].Name)
	require.False(t, listing.Entries[2].Valid)
}

func TestPersistOnlyWhenDirty(t *testing.T) {
	persistence := &memoryPersistence{}
	f := attach(t, newFakeResolver(), persistence)

	require.NoError(t, f.PersistChanges())
	require.Zero(t, persistence.saves)

	f.HandleDrop([]asset.Ref{"A"})
	require.NoError(t, f.PersistChanges())
	require.Equal(t, 1, persistence.saves)
	require.False(t, f.HasUnsavedChanges())

	f.HandlePageNav(Previous)
	require.NoError(t, f.Close())
	require.Equal(t, 1, persistence.saves)
}

func TestFailedPersistKeepsChanges(t *testing.T) {
	persistence := &memoryPersistence{fail: errors.New("disk full")}
	f := attach(t, newFakeResolver(), persistence)
	f.HandleDrop([]asset.Ref{"A"})

	err := f.PersistChanges()
	var commandErr *CommandError
	require.ErrorAs(t, err, &commandErr)
	require.True(t, f.HasUnsavedChanges())
}

func TestReloadRestoresBoardButNotCursor(t *testing.T) {
	persistence := &memoryPersistence{}
	f := attach(t, newFakeResolver(), persistence)
	f.HandleDrop([]asset.Ref{"A"})
	f.HandlePageNav(Next)
	f.HandleDrop([]asset.Ref{"B"})
	require.NoError(t, f.Close())

	reloaded := attach(t, newFakeResolver(), persistence)
	require.Equal(t, 2, reloaded.PageCount())
	require.Equal(t, 0, reloaded.CurrentPage().Position)
	require.Equal(t, []asset.Ref{"A"}, refsOf(reloaded.CurrentPage()))
	require.False(t, reloaded.HasUnsavedChanges())
}

func TestSearch(t *testing.T) {
	resolver := newFakeResolver().file("levels/intro.tscn", "levels/boss.tscn", "docs/plan.2D4X8R.ndoc.md")
	f := attach(t, resolver, &memoryPersistence{})
	f.HandleDrop([]asset.Ref{"levels/intro.tscn", "levels/boss.tscn"})
	f.HandlePageNav(Next)
	f.HandleRenamePage("Docs")
	f.HandleDrop([]asset.Ref{"docs/plan.2D4X8R.ndoc.md"})

	t.Run("Substring", func(t *testing.T) {
		results := f.Search("BOSS")
		require.Len(t, results, 1)
		require.Equal(t, 0, results[0].Page)
		require.Equal(t, 1, results[0].Index)
		require.Zero(t, results[0].Distance)
	})
	t.Run("Typo", func(t *testing.T) {
		results := f.Search("intrp")
		require.Len(t, results, 1)
		require.Equal(t, asset.Ref("levels/intro.tscn"), results[0].Entry.Ref)
		require.Positive(t, results[0].Distance)
	})
	t.Run("SecondPage", func(t *testing.T) {
		results := f.Search("plan")
		require.Len(t, results, 1)
		require.Equal(t, "Docs", results[0].PageTitle)
	})
	t.Run("Nothing", func(t *testing.T) {
		require.Empty(t, f.Search("zzzzzzzz"))
		require.Empty(t, f.Search("  "))
	})
}

func scriptedChoices(t *testing.T, answers ...string) RequestChoice {
	return func(request string, options []string, cleanup bool) string {
		if len(answers) == 0 {
			t.Fatalf("unexpected request: %s", request)
		}
		answer := answers[0]
		answers = answers[1:]
		if answer != ChoiceAborted {
			require.Contains(t, options, answer)
		}
		return answer
	}
}

func TestInteractivePrune(t *testing.T) {
	setup := func(t *testing.T) Favcurator {
		f := attach(t, newFakeResolver().file("kept.txt"), &memoryPersistence{})
		f.HandleDrop([]asset.Ref{"gone-1.txt", "kept.txt", "gone-2.txt"})
		return f
	}

	t.Run("All", func(t *testing.T) {
		f := setup(t)
		removed, cancelled := f.InteractivePrune(scriptedChoices(t, "All"))
		require.False(t, cancelled)
		require.Equal(t, 2, removed)
		require.Equal(t, []asset.Ref{"kept.txt"}, refsOf(f.CurrentPage()))
	})
	t.Run("Individually", func(t *testing.T) {
		f := setup(t)
		removed, cancelled := f.InteractivePrune(scriptedChoices(t, "Decide individually", "Info", "No", "Yes"))
		require.False(t, cancelled)
		require.Equal(t, 1, removed)
		require.Equal(t, []asset.Ref{"gone-1.txt", "kept.txt"}, refsOf(f.CurrentPage()))
	})
	t.Run("Skip", func(t *testing.T) {
		f := setup(t)
		removed, cancelled := f.InteractivePrune(scriptedChoices(t, "Skip"))
		require.False(t, cancelled)
		require.Zero(t, removed)
		require.Len(t, f.CurrentPage().Entries, 3)
	})
	t.Run("Abort", func(t *testing.T) {
		f := setup(t)
		removed, cancelled := f.InteractivePrune(scriptedChoices(t, "Decide individually", "Yes", ChoiceAborted))
		require.True(t, cancelled)
		require.Zero(t, removed)
		require.Len(t, f.CurrentPage().Entries, 3)
	})
	t.Run("NothingMissing", func(t *testing.T) {
		f := attach(t, newFakeResolver().file("kept.txt"), &memoryPersistence{})
		f.HandleDrop([]asset.Ref{"kept.txt"})
		removed, cancelled := f.InteractivePrune(scriptedChoices(t))
		require.False(t, cancelled)
		require.Zero(t, removed)
	})
}

func TestProjectLifecycle(t *testing.T) {
	for _, sqlite := range []bool{false, true} {
		name := "Gzip"
		if sqlite {
			name = "Sqlite"
		}
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(root, "levels"), 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(root, "levels", "boss.tscn"), []byte("[scene]"), 0o644))

			created, err := New(root, filepath.Join(root, "favorites.db"), sqlite, CreateConfig{Verbosity: QuietMode})
			require.NoError(t, err)
			require.NoError(t, created.Close())

			_, err = New(root, filepath.Join(root, "other.db"), sqlite, CreateConfig{Verbosity: QuietMode})
			require.Error(t, err, "second initialization must fail")

			f, err := Open(filepath.Join(root, "levels"), CreateConfig{Verbosity: QuietMode})
			require.NoError(t, err)
			require.Equal(t, root, f.Root())

			added, err := f.DropPaths([]string{
				filepath.Join(root, "levels"),
				filepath.Join(root, "levels", "boss.tscn"),
				filepath.Join(root, "levels", "missing.tscn"),
				filepath.Dir(root),
			})
			require.Equal(t, 2, added)
			require.ErrorIs(t, err, ErrAssetMissing)
			require.ErrorIs(t, err, ErrPathOutsideProject)
			require.NoError(t, f.Close())

			reopened, err := Open(root, CreateConfig{Verbosity: QuietMode})
			require.NoError(t, err)
			defer reopened.Close()
			require.Equal(t, []asset.Ref{"levels", "levels/boss.tscn"}, refsOf(reopened.CurrentPage()))
			activation, err := reopened.HandleActivate(0)
			require.NoError(t, err)
			require.Equal(t, Navigate, activation.Kind)
			require.Equal(t, filepath.Join(root, "levels"), activation.Path)
		})
	}
}

func TestOpenWithoutProjectFails(t *testing.T) {
	_, err := Open(t.TempDir(), CreateConfig{Verbosity: QuietMode})
	require.Error(t, err)
}
