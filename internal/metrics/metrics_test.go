package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/event"
)

func TestMiddleware_LabelsWithRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/wheels/{code}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/wheels/{code}", "418"))
	for _, code := range []string{"A", "B", "C"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wheels/"+code, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/wheels/{code}", "418"))
	assert.Equal(t, 3.0, after-before)
}

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	awarded := PrizesAwarded.WithLabelValues("MTEST", "50k")
	before := testutil.ToFloat64(awarded)

	result := &domain.DrawResult{
		Spin:  domain.SpinRecord{ID: uuid.New(), WheelCode: "MTEST", CreatedAt: time.Now()},
		Prize: domain.Prize{ID: "50k", Label: "50,000"},
	}
	require.NoError(t, bus.Publish(context.Background(), event.NewSpinResolvedEvent(result)))
	assert.Equal(t, 1.0, testutil.ToFloat64(awarded)-before)

	delivered := ClaimStatusChanges.WithLabelValues(string(domain.ClaimStatusDelivered))
	before = testutil.ToFloat64(delivered)
	spin := &domain.SpinRecord{ID: uuid.New(), WheelCode: "MTEST"}
	require.NoError(t, bus.Publish(context.Background(),
		event.NewClaimStatusChangedEvent(spin, domain.ClaimStatusClaimed, domain.ClaimStatusDelivered)))
	assert.Equal(t, 1.0, testutil.ToFloat64(delivered)-before)
}

func TestMiddleware_UnmatchedAndImplicitStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	ok := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200")
	missing := HTTPRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404")
	okBefore, missingBefore := testutil.ToFloat64(ok), testutil.ToFloat64(missing)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin.php", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(ok)-okBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(missing)-missingBefore)
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestEventMetricsCollector_UndecodablePayload(t *testing.T) {
	seen := EventsPublished.WithLabelValues(string(event.SpinResolved))
	before := testutil.ToFloat64(seen)
	err := NewEventMetricsCollector().HandleEvent(context.Background(),
		event.Event{Type: event.SpinResolved, Payload: "not a payload"})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(seen)-before)
}
