package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReadThrough(t *testing.T) {
	cache := NewCache()
	var calls atomic.Int32
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte(`"v"`), nil
	}

	for i := 0; i < 3; i++ {
		data, err := cache.Get(context.Background(), "/api/projects", fetch)
		require.NoError(t, err)
		assert.Equal(t, `"v"`, string(data))
	}
	assert.Equal(t, int32(1), calls.Load())

	cache.Invalidate("/api/projects")
	_, err := cache.Get(context.Background(), "/api/projects", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheCollapsesConcurrentMisses(t *testing.T) {
	cache := NewCache()
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte(`1`), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background(), "key", fetch)
			assert.NoError(t, err)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheInvalidateByPrefix(t *testing.T) {
	cache := NewCache()
	value := func(context.Context) ([]byte, error) { return []byte(`x`), nil }
	for _, key := range []string{"/api/projects", "/api/projects/1", "/api/expertise"} {
		_, err := cache.Get(context.Background(), key, value)
		require.NoError(t, err)
	}

	cache.Invalidate("/api/projects")
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheDoesNotStoreStaleFetch(t *testing.T) {
	cache := NewCache()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Get(context.Background(), "/api/projects", func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte(`old`), nil
		})
	}()

	<-started
	cache.Invalidate("/api/projects")
	close(release)
	<-done

	assert.Equal(t, 0, cache.Len())
}

func TestCacheErrorsAreNotCached(t *testing.T) {
	cache := NewCache()
	_, err := cache.Get(context.Background(), "k", func(context.Context) ([]byte, error) {
		return nil, errors.New("down")
	})
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestCacheCallerCancelDoesNotFailOthers(t *testing.T) {
	cache := NewCache()
	started := make(chan struct{})
	release := make(chan struct{})
	var fetchErr error
	fetch := func(ctx context.Context) ([]byte, error) {
		close(started)
		<-release
		fetchErr = ctx.Err()
		return []byte(`shared`), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "/api/projects", fetch)
		firstErr <- err
	}()
	<-started

	type result struct {
		data []byte
		err  error
	}
	second := make(chan result, 1)
	go func() {
		data, err := cache.Get(context.Background(), "/api/projects", fetch)
		second <- result{data, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, "shared", string(res.data))
	assert.NoError(t, fetchErr)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheInvalidateForgetsNewerFetch(t *testing.T) {
	cache := NewCache()
	const key = "/api/expertise"

	blocked := func(started chan<- struct{}, release <-chan struct{}, value string) func(context.Context) ([]byte, error) {
		return func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte(value), nil
		}
	}

	oldStarted, oldRelease := make(chan struct{}), make(chan struct{})
	oldDone := make(chan struct{})
	go func() {
		defer close(oldDone)
		_, _ = cache.Get(context.Background(), key, blocked(oldStarted, oldRelease, "old"))
	}()
	<-oldStarted
	cache.Invalidate(key)

	newStarted, newRelease := make(chan struct{}), make(chan struct{})
	newDone := make(chan struct{})
	go func() {
		defer close(newDone)
		_, _ = cache.Get(context.Background(), key, blocked(newStarted, newRelease, "newer"))
	}()
	<-newStarted

	close(oldRelease)
	<-oldDone

	cache.Invalidate(key)
	data, err := cache.Get(context.Background(), key, func(context.Context) ([]byte, error) {
		return []byte("fresh"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))

	close(newRelease)
	<-newDone
}

func TestSessionAuthenticated(t *testing.T) {
	assert.False(t, (&Session{}).Authenticated())
	assert.True(t, NewSession("t", time.Time{}).Authenticated())
	assert.True(t, NewSession("t", time.Now().Add(time.Hour)).Authenticated())
	assert.False(t, NewSession("t", time.Now().Add(-time.Hour)).Authenticated())
}

func newTestAPI(t *testing.T, settings map[string]string) *httptest.Server {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	d := database.New(db)
	require.NoError(t, d.Migrate())
	t.Cleanup(func() { _ = d.Close() })

	values := map[string]string{"JWT_SECRET": "client-test"}
	for k, v := range settings {
		values[k] = v
	}
	server, err := api.NewServer(config.FromMap(values), d)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestClientCRUD(t *testing.T) {
	ts := newTestAPI(t, nil)
	c := New(ts.URL)
	ctx := context.Background()

	projects, err := c.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	created, err := c.CreateProject(ctx, models.ProjectInput{Title: "X", Description: "Y", Image: "z.png"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	projects, err = c.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1, "create invalidates the cached list")

	updated, err := c.UpdateProject(ctx, created.ID, Fields{"title": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	got, err := c.Project(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	_, err = c.CreateProject(ctx, models.ProjectInput{Title: "missing fields"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errs.StatusOf(err))
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, apiErr.Violations, 2)

	require.NoError(t, c.DeleteProject(ctx, created.ID))
	_, err = c.Project(ctx, created.ID)
	assert.True(t, IsNotFound(err))

	err = c.DeleteProject(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestClientContactsAndStats(t *testing.T) {
	ts := newTestAPI(t, nil)
	c := New(ts.URL)
	ctx := context.Background()

	contact, err := c.SendContact(ctx, models.ContactInput{Name: "A", Email: "a@example.com", Subject: "S", Message: "M"})
	require.NoError(t, err)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.UnreadMessages)

	read, err := c.MarkContactRead(ctx, contact.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	stats, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.UnreadMessages, "writes invalidate the stats entry")

	icons, err := c.Icons(ctx)
	require.NoError(t, err)
	assert.Contains(t, icons.Expertise, models.IconCode)
}

func TestClientSession(t *testing.T) {
	ts := newTestAPI(t, map[string]string{"ENFORCE_ADMIN_AUTH": "true"})
	c := New(ts.URL)
	ctx := context.Background()

	exists, err := c.AdminExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = c.Register(ctx, "admin", "pw")
	require.NoError(t, err)
	_, err = c.Register(ctx, "admin2", "pw")
	assert.Equal(t, http.StatusForbidden, errs.StatusOf(err))

	assert.ErrorIs(t, c.RequireAdmin(ctx), ErrLoginRequired)

	_, err = c.Contacts(ctx)
	assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(err))

	require.Error(t, c.Login(ctx, "admin", "wrong"))
	assert.False(t, c.Session().Authenticated())

	require.NoError(t, c.Login(ctx, "admin", "pw"))
	assert.True(t, c.Session().Authenticated())
	require.NoError(t, c.RequireAdmin(ctx))

	contacts, err := c.Contacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.Session().Authenticated())
	assert.Equal(t, 0, c.Cache().Len())
}

func TestVerifyClearsRejectedToken(t *testing.T) {
	ts := newTestAPI(t, nil)
	c := New(ts.URL, WithSession(NewSession("admin_token", time.Time{})))

	_, err := c.Verify(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, errs.StatusOf(err))
	assert.Empty(t, c.Session().Token())
}

func TestVerifyClearsOnNetworkFailure(t *testing.T) {
	ts := newTestAPI(t, nil)
	url := ts.URL
	ts.Close()

	c := New(url, WithSession(NewSession("token", time.Time{})))
	_, err := c.Verify(context.Background())
	require.Error(t, err)
	assert.False(t, c.Session().Authenticated())
}
