package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cartshop/internal/config"
	"github.com/Skotchmaster/cartshop/internal/db"
	"github.com/Skotchmaster/cartshop/internal/events"
	"github.com/Skotchmaster/cartshop/internal/logging"
	"github.com/Skotchmaster/cartshop/internal/repo"
	"github.com/Skotchmaster/cartshop/internal/service"
	"github.com/Skotchmaster/cartshop/internal/transport"
)

type recordedEvent struct {
	Key   string
	Event events.CartEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, recordedEvent{Key: key, Event: event.(events.CartEvent)})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) recorded() []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedEvent(nil), p.events...)
}

type stubSearcher struct {
	total    int64
	products []transport.ProductResponse
	err      error
	gotQuery string
	gotSize  int
}

func (s *stubSearcher) Search(ctx context.Context, query string, size int) (int64, []transport.ProductResponse, error) {
	s.gotQuery, s.gotSize = query, size
	return s.total, s.products, s.err
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("database is closed") }

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Events *recordingPublisher
	Deps   *Deps
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	gdb, err := db.Open(ctx, config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newTestEnv(t *testing.T, searcher ProductSearcher) *testEnv {
	t.Helper()
	gdb := initTestDB(t)
	r := repo.New(gdb)
	pub := &recordingPublisher{}

	deps := &Deps{
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r}, Events: pub},
		Store:          r,
	}
	if searcher != nil {
		deps.CatalogHandler.Search = searcher
	}

	return &testEnv{
		T:      t,
		E:      New(logging.NewWithWriter(io.Discard, "error"), deps),
		DB:     gdb,
		Events: pub,
		Deps:   deps,
	}
}

func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	env.T.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(env.T, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func requireMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"message":"`+msg+`"}`, rec.Body.String())
}

func strPtr(s string) *string { return &s }

