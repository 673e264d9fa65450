package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/diary", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/diary", "200"))
	assert.Equal(t, float64(1), count)
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401")))
}

func TestRecordCheckoutSession(t *testing.T) {
	CheckoutSessionsTotal.Reset()

	RecordCheckoutSession("monthly", "subscription")
	RecordCheckoutSession("annual", "payment")
	RecordCheckoutSession("annual", "payment")

	assert.Equal(t, float64(1), testutil.ToFloat64(CheckoutSessionsTotal.WithLabelValues("monthly", "subscription")))
	assert.Equal(t, float64(2), testutil.ToFloat64(CheckoutSessionsTotal.WithLabelValues("annual", "payment")))
}

func TestRecordCheckoutFailure(t *testing.T) {
	CheckoutFailuresTotal.Reset()

	RecordCheckoutFailure("invalid_plan")

	assert.Equal(t, float64(1), testutil.ToFloat64(CheckoutFailuresTotal.WithLabelValues("invalid_plan")))
}

func TestRecordAuth(t *testing.T) {
	AuthRequestsTotal.Reset()

	RecordAuth("sign_in", "ok")
	RecordAuth("sign_in", "invalid_credentials")

	assert.Equal(t, float64(1), testutil.ToFloat64(AuthRequestsTotal.WithLabelValues("sign_in", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(AuthRequestsTotal.WithLabelValues("sign_in", "invalid_credentials")))
}

func TestRecordCollectionFetch(t *testing.T) {
	CollectionFetchesTotal.Reset()

	RecordCollectionFetch("game_diary", "ok")
	RecordCollectionFetch("game_diary", "error")
	RecordCollectionFetch("workouts", "ok")

	assert.Equal(t, float64(1), testutil.ToFloat64(CollectionFetchesTotal.WithLabelValues("game_diary", "error")))
	assert.Equal(t, 3, testutil.CollectAndCount(CollectionFetchesTotal))
}

func TestRecordBackendUnconfigured(t *testing.T) {
	BackendUnconfiguredTotal.Reset()

	RecordBackendUnconfigured("select")

	assert.Equal(t, float64(1), testutil.ToFloat64(BackendUnconfiguredTotal.WithLabelValues("select")))
}

func TestRecordCatalogCache(t *testing.T) {
	CatalogCacheTotal.Reset()

	RecordCatalogCache("workouts", "hit")
	RecordCatalogCache("workouts", "miss")
	RecordCatalogCache("workouts", "hit")

	assert.Equal(t, float64(2), testutil.ToFloat64(CatalogCacheTotal.WithLabelValues("workouts", "hit")))
}

func TestActiveShells(t *testing.T) {
	ActiveShells.Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(ActiveShells))

	ActiveShells.Dec()
	assert.Equal(t, float64(2), testutil.ToFloat64(ActiveShells))
}
