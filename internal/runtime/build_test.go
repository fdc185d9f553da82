package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatimanet/hr-mcp-server/internal/audit"
	"github.com/fatimanet/hr-mcp-server/internal/dsl"
	"github.com/fatimanet/hr-mcp-server/internal/market"
	"github.com/fatimanet/hr-mcp-server/internal/ratelimit"
	"github.com/fatimanet/hr-mcp-server/internal/templates"
)

type recordingAudit struct {
	events []audit.Event
}

func (r *recordingAudit) Record(_ context.Context, event audit.Event) {
	r.events = append(r.events, event)
}

func (r *recordingAudit) types() []string {
	out := make([]string, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.Type)
	}
	return out
}

func testConfig() *dsl.Config {
	return &dsl.Config{
		Server: dsl.ServerConfig{Name: "hr-mcp-server", Version: "1.0.0"},
		Resources: []dsl.ResourceConfig{
			{Name: "roster", URI: "hr://companies", MIMEType: "text/plain", Text: "OCP"},
		},
	}
}

func TestBuild(t *testing.T) {
	builder := Builder{Market: market.NewStore(market.DefaultCompanies())}

	server, err := builder.Build(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestBuildRequiresMarket(t *testing.T) {
	builder := Builder{}

	_, err := builder.Build(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market store is nil")
}

func TestBeginAllows(t *testing.T) {
	rec := &recordingAudit{}
	builder := Builder{Audit: rec}

	correlationID, err := builder.begin(context.Background(), "get_employee_info", map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, correlationID)
	assert.Equal(t, []string{audit.TypeToolCall}, rec.types())
}

func TestBeginDeniesOverLimit(t *testing.T) {
	bundle, err := templates.Load("en")
	require.NoError(t, err)

	rec := &recordingAudit{}
	builder := Builder{
		Audit:     rec,
		Templates: bundle,
		Limits:    ratelimit.New(ratelimit.Policy{MaxTotal: 1}),
	}

	_, err = builder.begin(context.Background(), "get_all_companies", nil)
	require.NoError(t, err)

	_, err = builder.begin(context.Background(), "get_all_companies", nil)
	require.Error(t, err)
	assert.Equal(t, "Maximum number of calls exceeded", err.Error())
	assert.Equal(t, []string{audit.TypeToolCall, audit.TypeToolCall, audit.TypeDenied}, rec.types())
}

func TestBeginDenialFallbackWithoutTemplates(t *testing.T) {
	builder := Builder{Limits: ratelimit.New(ratelimit.Policy{MaxTotal: 0, PerMinute: 60, Burst: 1})}

	_, err := builder.begin(context.Background(), "get_stock_by_company", nil)
	require.NoError(t, err)

	_, err = builder.begin(context.Background(), "get_stock_by_company", nil)
	require.Error(t, err)
	assert.Equal(t, "rate limit exceeded", err.Error())
}

func TestFinishRecordsOutcome(t *testing.T) {
	rec := &recordingAudit{}
	builder := Builder{Audit: rec}

	builder.finish(context.Background(), "get_company_by_name", "corr-1", nil)
	builder.finish(context.Background(), "get_company_by_name", "corr-2", assert.AnError)

	require.Len(t, rec.events, 2)
	assert.Equal(t, audit.TypeToolOK, rec.events[0].Type)
	assert.Equal(t, audit.TypeToolErr, rec.events[1].Type)
	assert.Equal(t, assert.AnError.Error(), rec.events[1].Reason)
}

func TestCorrelationIDsAreUnique(t *testing.T) {
	builder := Builder{}

	first, err := builder.begin(context.Background(), "tool", nil)
	require.NoError(t, err)
	second, err := builder.begin(context.Background(), "tool", nil)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
