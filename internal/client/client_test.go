package client

import (
	"net/http/httptest"
	"testing"
	"time"

	httpapi "hospital-data/internal/http"
	"hospital-data/internal/metrics"
	"hospital-data/internal/records"
	"hospital-data/internal/service"
	"hospital-data/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	clock := func() time.Time { return time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC) }
	rec := metrics.NewRecorder()
	svc := service.NewRecordService(
		service.NewCatalog(clock, records.Coercer{}),
		service.NewDraftStore(store.NewMemoryKV(), time.Hour),
		service.RecordServiceOptions{Metrics: rec},
	)
	srv := httptest.NewServer(httpapi.NewRouter(svc, rec, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ModulesAndList(t *testing.T) {
	c := New(newServer(t).URL, zap.NewNop())

	mods, err := c.Modules()
	require.NoError(t, err)
	require.Len(t, mods, 9)
	assert.Equal(t, "/report", mods[8].Path)
	assert.NotEmpty(t, c.Session())

	page, err := c.List("staff", "staff", "nurse")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, 2, page.Total)
}

func TestClient_DraftKeepsSession(t *testing.T) {
	c := New(newServer(t).URL, zap.NewNop())

	_, err := c.SetField("laboratory", "specimens", "specimenType", "Blood")
	require.NoError(t, err)
	d, err := c.Draft("laboratory", "specimens")
	require.NoError(t, err)
	assert.Contains(t, string(d), `"specimenType":"Blood"`)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	c := New(newServer(t).URL, zap.NewNop())

	_, err := c.List("radiology", "scans", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module")
}
