package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/testutil"
)

func newTestRepo(t *testing.T) *DocumentRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DocumentRepository()
}

func TestDocumentRepository_SaveAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := testutil.NewDoc("Groceries").Para("milk").Build()
	res, err := repo.Save(ctx, doc)
	require.NoError(t, err)

	_, err = uuid.Parse(res.ID)
	require.NoError(t, err, "new documents get a UUID")
	require.Equal(t, int64(1), res.Revision)
	require.Equal(t, 4, res.Inserted)
	require.Zero(t, res.Deleted)
}

func TestDocumentRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := testutil.StandardDoc()
	res, err := repo.Save(ctx, doc)
	require.NoError(t, err)

	got, err := repo.Get(ctx, res.ID)
	require.NoError(t, err)
	doc.ID = res.ID
	require.Equal(t, doc, got.Document)
	require.Equal(t, int64(1), got.Revision)

	byTitle, err := repo.GetByTitle(ctx, doc.Title)
	require.NoError(t, err)
	require.Equal(t, got.Document, byTitle.Document)
}

func TestDocumentRepository_SaveIncrementsRevisionWithStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res, err := repo.Save(ctx, testutil.NewDoc("Notes").Para("hello world").Build())
	require.NoError(t, err)

	edited := testutil.NewDoc("Notes").Para("hello there world").Build()
	edited.ID = res.ID
	res2, err := repo.Save(ctx, edited)
	require.NoError(t, err)
	require.Equal(t, int64(2), res2.Revision)
	require.Equal(t, 6, res2.Inserted)
	require.Zero(t, res2.Deleted)

	rev, err := repo.Revision(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), rev)

	hist, err := repo.History(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, int64(2), hist[0].Revision)
	require.Equal(t, 6, hist[0].Inserted)
}

func TestDocumentRepository_SaveUnchanged(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := testutil.NewDoc("Notes").Para("same").Build()
	res, err := repo.Save(ctx, doc)
	require.NoError(t, err)

	doc.ID = res.ID
	res2, err := repo.Save(ctx, doc)
	require.NoError(t, err)
	require.True(t, res2.Unchanged)
	require.Equal(t, int64(1), res2.Revision)
}

func TestDocumentRepository_MarkOnlyChangeIsNewRevision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res, err := repo.Save(ctx, testutil.NewDoc("Notes").Para("word").Build())
	require.NoError(t, err)

	bold := testutil.NewDoc("Notes").Para("word", testutil.Bold()).Build()
	bold.ID = res.ID
	res2, err := repo.Save(ctx, bold)
	require.NoError(t, err)
	require.False(t, res2.Unchanged)
	require.Equal(t, int64(2), res2.Revision)
	require.Zero(t, res2.Inserted)
	require.Zero(t, res2.Deleted)
}

func TestDocumentRepository_SaveRequiresTitle(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Save(context.Background(), richtext.Document{Title: "  "})
	require.Error(t, err)
}

func TestDocumentRepository_DuplicateTitle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, testutil.NewDoc("Dup").Build())
	require.NoError(t, err)
	_, err = repo.Save(ctx, testutil.NewDoc("Dup").Build())
	require.Error(t, err, "titles are unique")
}

func TestDocumentRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	var nf *DocumentNotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "missing", nf.ID)

	_, err = repo.GetByTitle(ctx, "Nope")
	require.ErrorAs(t, err, &nf)
	require.Contains(t, err.Error(), `"Nope"`)

	_, err = repo.Revision(ctx, "missing")
	require.ErrorAs(t, err, &nf)

	err = repo.Delete(ctx, "missing")
	require.ErrorAs(t, err, &nf)
}

func TestDocumentRepository_ListOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clock := time.Unix(1_700_000_000, 0)
	repo.now = func() time.Time { return clock }

	_, err := repo.Save(ctx, testutil.NewDoc("Older").Build())
	require.NoError(t, err)
	clock = clock.Add(time.Minute)
	_, err = repo.Save(ctx, testutil.NewDoc("Newer").Build())
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Newer", list[0].Title)
	require.Equal(t, "Older", list[1].Title)
	require.Equal(t, clock.Unix(), list[0].UpdatedAt.Unix())
}

func TestDocumentRepository_DeleteCascadesHistory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res, err := repo.Save(ctx, testutil.NewDoc("Gone").Para("x").Build())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, res.ID))

	hist, err := repo.History(ctx, res.ID)
	require.NoError(t, err)
	require.Empty(t, hist)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDocumentRepository_ReferencesSurvive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := testutil.NewDoc("Refs").Ref(editor.NodePage, "Roadmap").Build()
	res, err := repo.Save(ctx, doc)
	require.NoError(t, err)

	got, err := repo.Get(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, got.Document.Blocks, 1)
	require.Equal(t, editor.NodePage, got.Document.Blocks[0].Type)
	require.Equal(t, "Roadmap", got.Document.Blocks[0].Ref)
}

func TestRuneStats(t *testing.T) {
	ins, del := runeStats("héllo", "hello!")
	require.Equal(t, 2, ins)
	require.Equal(t, 1, del)

	ins, del = runeStats("", "")
	require.Zero(t, ins)
	require.Zero(t, del)
}

func TestDocumentRepository_ConcurrentSavesSerialize(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res, err := repo.Save(ctx, testutil.NewDoc("Race").Para("v0").Build())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := testutil.NewDoc("Race").WithID(res.ID).Para("edit " + string(rune('a'+i))).Build()
			_, errs[i] = repo.Save(ctx, doc)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err, "writers wait for the lock instead of failing")
	}
	rev, err := repo.Revision(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), rev)
}
