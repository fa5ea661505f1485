package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-measure/measure"
	"plan-measure/project"
	"plan-measure/store"
)

func newTestServer(t *testing.T) (*server, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return newServer(st, log, nil), st
}

func do(s *server, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router().ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, st store.Store) {
	t.Helper()
	snap := project.New("plan-1")
	snap.Scale = 40
	snap.Measurements = []measure.Measurement{
		{ID: "a", Name: "Kitchen", Width: 200, Height: 40},
		{ID: "b", Name: "Hall", Width: 80, Height: 40},
	}
	snap.Normalize()
	require.NoError(t, st.Save(context.Background(), snap))
}

func TestListProjects(t *testing.T) {
	s, st := newTestServer(t)

	w := do(s, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projects":[]}`, w.Body.String())

	seed(t, st)
	w = do(s, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projects":["plan-1"]}`, w.Body.String())
}

func TestGetProject(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)

	w := do(s, http.MethodGet, "/api/projects/plan-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap project.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "plan-1", snap.ID)
	require.Len(t, snap.Measurements, 2)
	assert.Equal(t, "Kitchen", snap.Measurements[0].Name)
	assert.InDelta(t, 5.0, snap.Measurements[0].AreaM2, 1e-9)
}

func TestGetMissingProject(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/api/projects/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestPutProject(t *testing.T) {
	s, st := newTestServer(t)

	body := `{"scale": 100, "measurements": [
		{"id": "x", "name": "Room", "x": 10, "y": 10, "width": 100, "height": 150},
		{"id": "y", "name": "Empty", "width": 0, "height": 10},
		{"id": "z", "name": "Stale", "x": 200, "y": 10, "width": 100, "height": 100, "areaM2": 4}
	]}`
	w := do(s, http.MethodPut, "/api/projects/plan-2", body)
	require.Equal(t, http.StatusOK, w.Code)

	snap, err := st.Load(context.Background(), "plan-2")
	require.NoError(t, err)
	require.Len(t, snap.Measurements, 2)
	assert.InDelta(t, 1.5, snap.Measurements[0].AreaM2, 1e-9)
	assert.InDelta(t, 4.0, snap.Measurements[1].AreaM2, 1e-9)
}

func TestPutRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodPut, "/api/projects/plan-2", `{"scale":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodPut, "/api/projects/plan-2", `{"id": "other"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodPut, "/api/projects/bad.id", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProject(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)

	w := do(s, http.MethodDelete, "/api/projects/plan-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(s, http.MethodDelete, "/api/projects/plan-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCSV(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)

	w := do(s, http.MethodGet, "/api/projects/plan-1/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "plan-1.csv")
	assert.Equal(t, "Name,Area (m²)\nKitchen,5.00\nHall,2.00\nTotal,7.00\n", w.Body.String())
}

func TestExportErrors(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)

	w := do(s, http.MethodGet, "/api/projects/plan-1/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodGet, "/api/projects/missing/export", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunFailsWhenPortIsTaken(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	port := uint(l.Addr().(*net.TCPAddr).Port)
	err = Run(ctx, st, log, &Options{Port: port})
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := uint(l.Addr().(*net.TCPAddr).Port)
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Run(ctx, st, log, &Options{Port: port}))
}
