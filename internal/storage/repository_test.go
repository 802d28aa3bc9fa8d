package storage_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/tripforge/internal/plan"
	"github.com/tripforge/tripforge/internal/storage"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

// ---- mock pgx.Rows ----

type fakeRows struct {
	n      int
	idx    int
	scanFn func(i int, dest ...any) error
	rowErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= f.n }
func (f *fakeRows) Scan(dest ...any) error                       { return f.scanFn(f.idx-1, dest...) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

// ---- helpers ----

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func samplePlanJSON(t *testing.T) []byte {
	t.Helper()
	p := plan.Plan{
		Destination:  "Rome",
		DurationDays: 2,
		Days:         []plan.DayPlan{{Day: 1}, {Day: 2}},
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return b
}

// fillItinerary assigns one full itinerary row into a Scan destination list.
func fillItinerary(t *testing.T, dest []any, id int, planJSON []byte) {
	t.Helper()
	require.Len(t, dest, 11)
	*dest[0].(*int) = id
	*dest[1].(*int) = 42
	*dest[2].(*string) = "Rome"
	*dest[3].(*string) = "Moderate"
	*dest[4].(*int) = 2
	*dest[5].(*[]byte) = []byte(`["history","food"]`)
	*dest[6].(*[]byte) = planJSON
	*dest[7].(*bool) = false
	*dest[8].(**string) = nil
	*dest[9].(*time.Time) = testTime
	*dest[10].(*time.Time) = testTime
}

// ---- itinerary tests ----

func TestCreateItinerary_MarshalsDocuments(t *testing.T) {
	var captured []any
	planJSON := samplePlanJSON(t)
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			captured = args
			return &fakeRow{scanFn: func(dest ...any) error {
				fillItinerary(t, dest, 1, planJSON)
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	req := plan.TripRequest{Destination: "Rome", Budget: "Moderate", DurationDays: 2, Interests: []string{"history", "food"}}
	var p plan.Plan
	require.NoError(t, json.Unmarshal(planJSON, &p))

	it, err := repo.CreateItinerary(context.Background(), 42, req, p)
	require.NoError(t, err)
	require.NotNil(t, it)

	require.Len(t, captured, 6)
	assert.Equal(t, 42, captured[0])
	assert.JSONEq(t, `["history","food"]`, string(captured[4].([]byte)))
	assert.JSONEq(t, string(planJSON), string(captured[5].([]byte)))
}

func TestGetItinerary_Found(t *testing.T) {
	planJSON := samplePlanJSON(t)
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			assert.Equal(t, []any{3, 42}, args)
			return &fakeRow{scanFn: func(dest ...any) error {
				fillItinerary(t, dest, 3, planJSON)
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	it, err := repo.GetItinerary(context.Background(), 3, 42)
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "Rome", it.Destination)
	assert.Equal(t, []string{"history", "food"}, it.Interests)
	require.Len(t, it.Plan.Days, 2)
}

func TestGetItinerary_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	it, err := repo.GetItinerary(context.Background(), 99, 42)
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestGetItinerary_BadPlanJSON(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				fillItinerary(t, dest, 3, []byte("not-json"))
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.GetItinerary(context.Background(), 3, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshaling plan")
}

func TestListItineraries(t *testing.T) {
	planJSON := samplePlanJSON(t)
	rows := &fakeRows{
		n: 2,
		scanFn: func(i int, dest ...any) error {
			fillItinerary(t, dest, i+1, planJSON)
			return nil
		},
	}
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	results, err := repo.ListItineraries(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].ID)
	assert.Equal(t, 2, results[1].ID)
}

func TestListItineraries_RowsErr(t *testing.T) {
	rows := &fakeRows{rowErr: fmt.Errorf("iteration failed")}
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListItineraries(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterating")
}

func TestUpdatePlan_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	it, err := repo.UpdatePlan(context.Background(), 99, 42, plan.Plan{})
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestShareItinerary_RowsAffected(t *testing.T) {
	var captured []any
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			captured = args
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	shared, err := repo.ShareItinerary(context.Background(), 3, 42, "abc12345")
	require.NoError(t, err)
	assert.True(t, shared)
	assert.Equal(t, []any{3, 42, "abc12345"}, captured)
}

func TestShareItinerary_NoMatch(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	shared, err := repo.ShareItinerary(context.Background(), 99, 42, "abc12345")
	require.NoError(t, err)
	assert.False(t, shared)
}

func TestGetSharedItinerary_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			assert.Equal(t, []any{"nope1234"}, args)
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	it, err := repo.GetSharedItinerary(context.Background(), "nope1234")
	require.NoError(t, err)
	assert.Nil(t, it)
}

// ---- user tests ----

func TestCreateUser_Success(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			assert.Equal(t, []any{"marco", "marco@example.com", "hashed"}, args)
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*int) = 1
				*dest[1].(*string) = "marco"
				*dest[2].(*string) = "marco@example.com"
				*dest[3].(*string) = "hashed"
				*dest[4].(**string) = nil
				*dest[5].(*time.Time) = testTime
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	u, err := repo.CreateUser(context.Background(), "marco", "marco@example.com", "hashed")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "marco", u.Username)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	u, err := repo.GetUserByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserExists(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*bool) = true
				return nil
			}}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	exists, err := repo.UserExists(context.Background(), "marco@example.com", "marco")
	require.NoError(t, err)
	assert.True(t, exists)
}

// ---- photo tests ----

func TestGetPhoto_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	p, err := repo.GetPhoto(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdatePhotoMeta_NilTagsKeepCurrent(t *testing.T) {
	var captured []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			captured = args
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	title := "Colosseum"
	_, err := repo.UpdatePhotoMeta(context.Background(), 7, 42, storage.PhotoMetaUpdate{Title: &title})
	require.NoError(t, err)

	// tags rides at $7: a nil value must reach COALESCE untouched.
	require.Len(t, captured, 8)
	assert.Nil(t, captured[6])
}

// ---- album tests ----

func TestRenameAlbum_NotFound(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(_ ...any) error { return pgx.ErrNoRows }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	name := "New name"
	a, err := repo.RenameAlbum(context.Background(), 9, 42, &name)
	require.NoError(t, err)
	assert.Nil(t, a)
}

// ---- NewRepository ----

func TestNewRepository_NotNil(t *testing.T) {
	repo := storage.NewRepository(nil)
	assert.NotNil(t, repo)
}

// ---- migration tests ----

// mockMigrationPool hands out transactions for RunMigrations.
type mockMigrationPool struct {
	beginFn func(ctx context.Context) (pgx.Tx, error)
}

func (m *mockMigrationPool) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.beginFn(ctx)
}

// mockTx is a minimal pgx.Tx implementation for testing migrations.
type mockTx struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	commitFn   func(ctx context.Context) error
	rollbackFn func(ctx context.Context) error
}

func (t *mockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.execFn(ctx, sql, args...)
}
func (t *mockTx) Commit(ctx context.Context) error   { return t.commitFn(ctx) }
func (t *mockTx) Rollback(ctx context.Context) error { return t.rollbackFn(ctx) }

// pgx.Tx has many more methods; stub them all out.
func (t *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (t *mockTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *mockTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *mockTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (t *mockTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *mockTx) Conn() *pgx.Conn { return nil }

func migrationTx(execFn func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)) *mockTx {
	return &mockTx{
		execFn:     execFn,
		commitFn:   func(_ context.Context) error { return nil },
		rollbackFn: func(_ context.Context) error { return nil },
	}
}

func TestRunMigrations_EmptyFS(t *testing.T) {
	err := storage.RunMigrations(context.Background(), nil, fstest.MapFS{})
	require.NoError(t, err)
}

func TestRunMigrations_RunsFilesInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"0003_c.sql": {Data: []byte("SELECT 3;")},
		"0001_a.sql": {Data: []byte("SELECT 1;")},
		"0002_b.sql": {Data: []byte("SELECT 2;")},
		"notes.txt":  {Data: []byte("ignored")},
	}

	var order []string
	tx := migrationTx(func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
		order = append(order, sql)
		return pgconn.CommandTag{}, nil
	})
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT 1;", "SELECT 2;", "SELECT 3;"}, order)
}

func TestRunMigrations_ExecError(t *testing.T) {
	fsys := fstest.MapFS{"0001_a.sql": {Data: []byte("INVALID SQL;")}}

	rolledBack := false
	tx := migrationTx(func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, fmt.Errorf("syntax error")
	})
	tx.rollbackFn = func(_ context.Context) error { rolledBack = true; return nil }
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing migration 0001_a.sql")
	assert.True(t, rolledBack)
}

func TestRunMigrations_BeginError(t *testing.T) {
	fsys := fstest.MapFS{"0001_a.sql": {Data: []byte("SELECT 1;")}}
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return nil, fmt.Errorf("cannot begin") },
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.Error(t, err)
}

func TestRunMigrations_CommitError(t *testing.T) {
	fsys := fstest.MapFS{"0001_a.sql": {Data: []byte("SELECT 1;")}}

	tx := migrationTx(func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, nil
	})
	tx.commitFn = func(_ context.Context) error { return fmt.Errorf("commit failed") }
	pool := &mockMigrationPool{
		beginFn: func(_ context.Context) (pgx.Tx, error) { return tx, nil },
	}

	err := storage.RunMigrations(context.Background(), pool, fsys)
	require.Error(t, err)
}

// ---- Connect tests ----

func TestConnect_BadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := storage.Connect(ctx, "postgres://invalid-host-xyz:5432/db?sslmode=disable")
	require.Error(t, err)
}
