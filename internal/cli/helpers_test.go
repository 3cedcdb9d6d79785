package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskboard/internal/api"
	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/logging"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/services"
)

type testApp struct {
	app    *App
	out    *bytes.Buffer
	client *client.Client
}

// setupTestApp wires an App to an in-memory store served over httptest, so
// client-backed and store-backed commands see the same tasks.
func setupTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	router := api.NewRouter(services.NewTaskService(store, nil, nil), api.RouterOptions{Logger: logging.Discard()})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL+"/api/tasks", client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app := NewApp(config.NewConfig(),
		WithTaskAPI(c),
		WithStore(store),
		WithOutput(out),
		WithInput(strings.NewReader(input)),
		WithLogger(logging.Discard()),
	)
	return &testApp{app: app, out: out, client: c}
}

func (ta *testApp) create(t *testing.T, in domain.NewTaskInput) *domain.Task {
	t.Helper()
	task, err := ta.client.Create(context.Background(), in)
	require.NoError(t, err)
	return task
}

func (ta *testApp) get(t *testing.T, id string) *domain.Task {
	t.Helper()
	task, err := ta.client.Get(context.Background(), id)
	require.NoError(t, err)
	return task
}

// withFixedTime pins timeNow for the duration of the test.
func withFixedTime(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}
