package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeTokenDB is just enough of database.DB for the device token queries.
// It deliberately has no locking of its own, so any race between the
// lookup and the insert shows up as a duplicate-insert error.
type fakeTokenDB struct {
	rows    map[string]DeviceToken
	inserts int
}

func newFakeTokenDB() *fakeTokenDB {
	return &fakeTokenDB{rows: map[string]DeviceToken{}}
}

func tokenKey(userID uuid.UUID, token string) string {
	return userID.String() + "|" + token
}

func (d *fakeTokenDB) Ping(context.Context) error { return nil }
func (d *fakeTokenDB) Close() error               { return nil }
func (d *fakeTokenDB) Begin(context.Context) (database.Tx, error) {
	return nil, errors.New("not supported")
}

func (d *fakeTokenDB) Exec(_ context.Context, _ string, args ...any) (int64, error) {
	// INSERT INTO device_tokens (id, user_id, token, platform)
	id := args[0].(uuid.UUID)
	userID := args[1].(uuid.UUID)
	token := args[2].(string)
	platform := args[3].(string)

	key := tokenKey(userID, token)
	if _, ok := d.rows[key]; ok {
		return 0, errors.New("duplicate key value violates unique constraint")
	}
	d.inserts++
	d.rows[key] = DeviceToken{ID: id, UserID: userID, Token: token, Platform: platform, CreatedAt: time.Now()}
	return 1, nil
}

func (d *fakeTokenDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not supported")
}

type fakeTokenRow struct {
	t   DeviceToken
	err error
}

func (r fakeTokenRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*uuid.UUID) = r.t.ID
	*dest[1].(*uuid.UUID) = r.t.UserID
	*dest[2].(*string) = r.t.Token
	*dest[3].(*string) = r.t.Platform
	*dest[4].(*time.Time) = r.t.CreatedAt
	return nil
}

func (d *fakeTokenDB) QueryRow(_ context.Context, _ string, args ...any) database.Row {
	userID := args[0].(uuid.UUID)
	token := args[1].(string)
	t, ok := d.rows[tokenKey(userID, token)]
	if !ok {
		return fakeTokenRow{err: pgx.ErrNoRows}
	}
	return fakeTokenRow{t: t}
}

func TestDeviceTokens_FindOrInsert_ConcurrentSameToken(t *testing.T) {
	db := newFakeTokenDB()
	repo := NewPostgresDeviceTokenRepository(db, nil)

	userID := uuid.New()
	const workers = 16

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.FindOrInsert(context.Background(), DeviceToken{
				UserID:   userID,
				Token:    "device-abc",
				Platform: "web",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if db.inserts != 1 {
		t.Fatalf("expected exactly one insert, got %d", db.inserts)
	}
}

func TestDeviceTokens_FindOrInsert_ReturnsExistingRow(t *testing.T) {
	db := newFakeTokenDB()
	repo := NewPostgresDeviceTokenRepository(db, nil)

	userID := uuid.New()
	first, err := repo.FindOrInsert(context.Background(), DeviceToken{UserID: userID, Token: "tok", Platform: "ios"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second, err := repo.FindOrInsert(context.Background(), DeviceToken{UserID: userID, Token: "tok", Platform: "ios"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("re-registration must return the existing row")
	}
}
