package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

func TestObserve_CountsIssueCodes(t *testing.T) {
	c := NewCollector()

	inner := safeparse.SchemaFunc[any](func(content any) safeparse.ParseResult[any] {
		return safeparse.Fail[any](
			issue.Issue{Path: []string{"a"}, Detail: &issue.TooSmall{Type: "string", Minimum: 3}},
			issue.Issue{Path: []string{"b"}, Detail: &issue.TooSmall{Type: "array", Minimum: 1}},
			issue.Issue{Path: []string{"c"}, Detail: &issue.Custom{Rule: "isSlug"}},
		)
	})

	out := safeparse.SafeParse[any](map[string]any{}, Observe[any](c, inner), types.PolicyDiagnostic)
	assert.Equal(t, safeparse.StatusFailure, out.Status())

	assert.Equal(t, 2.0, testutil.ToFloat64(c.issues.WithLabelValues(string(issue.CodeTooSmall))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.issues.WithLabelValues(string(issue.CodeCustom))))
}

func TestObserve_NilCollector(t *testing.T) {
	inner := safeparse.SchemaFunc[any](func(content any) safeparse.ParseResult[any] {
		return safeparse.Ok[any](content)
	})
	assert.NotNil(t, Observe[any](nil, inner))

	var c *Collector
	c.RecordOutcome(types.PolicyDiagnostic, safeparse.StatusSuccess)
	c.ObserveDuration(types.FormatZod, time.Millisecond)
	c.RecordCacheLookup(true)
	c.SetRegistrySchemas(3)
}

func TestCollector_Record(t *testing.T) {
	c := NewCollector()

	c.RecordOutcome(types.PolicyDiagnostic, safeparse.StatusFailure)
	c.RecordOutcome(types.PolicyDiagnostic, safeparse.StatusFailure)
	c.RecordOutcome(types.PolicyPrivacyPreserving, safeparse.StatusSuccess)
	c.ObserveDuration(types.FormatYAML, 2*time.Millisecond)
	c.RecordCacheLookup(true)
	c.RecordCacheLookup(false)
	c.RecordCacheLookup(false)
	c.SetRegistrySchemas(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.outcomes.WithLabelValues("diagnostic", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outcomes.WithLabelValues("privacy-preserving", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.schemas))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.RecordOutcome(types.PolicyDiagnostic, safeparse.StatusSuccess)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `safeparse_outcomes_total{policy="diagnostic",status="success"} 1`)
}
