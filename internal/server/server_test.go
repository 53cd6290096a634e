package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vigil-313/citymesh/pkg/building"
	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/mapdata"
	"github.com/vigil-313/citymesh/pkg/scene"
	"github.com/vigil-313/citymesh/pkg/stream"
	"github.com/vigil-313/citymesh/pkg/validation"
)

func TestMain(m *testing.M) {
	zap.ReplaceGlobals(zap.NewNop())
	m.Run()
}

func testState() State {
	rec := mapdata.Record{
		ID:        1,
		Name:      "Depot",
		Kind:      mapdata.KindBuilding,
		Footprint: geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10)),
		Center:    geo.Pt(5, 5),
		Height:    9,
		Levels:    3,
	}
	res := building.Generate(rec, building.DeriveContext(rec, nil, nil, false))
	root := scene.NewRoot("world")
	root.AddChild(scene.BuildFeatureNode(rec, res, nil))

	return State{
		Root:    root,
		Queue:   stream.QueueStats{Executed: 1},
		Chunks:  stream.ManagerStats{Resident: 1},
		Report:  validation.NewReport(),
		Records: []mapdata.Record{rec},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSceneEndpoint(t *testing.T) {
	h := New(0, testState()).Router()
	rr := get(t, h, "/api/scene")
	require.Equal(t, http.StatusOK, rr.Code)

	var snap scene.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.Nodes)
	assert.NotZero(t, snap.Vertices)
	require.Len(t, snap.Root.Children, 1)
	assert.Equal(t, "Depot · 3fl · 9 m", snap.Root.Children[0].Label)
}

func TestSceneEndpointNoScene(t *testing.T) {
	h := New(0, State{}).Router()
	rr := get(t, h, "/api/scene")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatsEndpoint(t *testing.T) {
	h := New(0, testState()).Router()
	rr := get(t, h, "/api/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Queue  stream.QueueStats   `json:"queue"`
		Chunks stream.ManagerStats `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, uint64(1), body.Queue.Executed)
	assert.Equal(t, 1, body.Chunks.Resident)
}

func TestValidationEndpoint(t *testing.T) {
	h := New(0, testState()).Router()
	rr := get(t, h, "/api/validation")
	require.Equal(t, http.StatusOK, rr.Code)

	var report validation.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.True(t, report.Valid)

	// A nil report still serves an empty valid one.
	rr = get(t, New(0, State{Root: scene.NewRoot("w")}).Router(), "/api/validation")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRecordsEndpoint(t *testing.T) {
	h := New(0, testState()).Router()
	rr := get(t, h, "/api/records")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Total  int            `json:"total"`
		ByKind map[string]int `json:"by_kind"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 1, body.ByKind["building"])
}

func TestIndexServesHTML(t *testing.T) {
	rr := get(t, New(0, testState()).Router(), "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
}
