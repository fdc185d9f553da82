package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fatimanet/hr-mcp-server/internal/audit"
	"github.com/fatimanet/hr-mcp-server/internal/cache"
	"github.com/fatimanet/hr-mcp-server/internal/directory"
	"github.com/fatimanet/hr-mcp-server/internal/dsl"
	"github.com/fatimanet/hr-mcp-server/internal/market"
	"github.com/fatimanet/hr-mcp-server/internal/protocol"
	"github.com/fatimanet/hr-mcp-server/internal/ratelimit"
	"github.com/fatimanet/hr-mcp-server/internal/templates"
)

// Builder constructs an MCP server over the directory and market stores.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool events.
	Audit audit.Logger
	// Templates provides localized messages.
	Templates templates.Renderer
	// Market is the company dataset.
	Market *market.Store
	// Limits guards tool usage; nil disables limiting.
	Limits *ratelimit.Guard
	// Quotes caches stock quotes per company; nil disables caching.
	Quotes *cache.Cache[protocol.StockQuote]
}

// EmployeeQuery is the input of get_employee_info.
type EmployeeQuery struct {
	// Name is the employee name; any text is accepted, empty included.
	Name string `json:"name" jsonschema:"the employee name"`
}

// CompanyQuery is the input of the company tools.
type CompanyQuery struct {
	// CompanyName is the exact company name.
	CompanyName string `json:"company_name" jsonschema:"the exact company name"`
}

// EmptyQuery is the input of tools that take no arguments.
type EmptyQuery struct{}

// Build creates an MCP server with tools and resources.
func (b Builder) Build(cfg *dsl.Config) (*mcp.Server, error) {
	if b.Market == nil {
		return nil, fmt.Errorf("market store is nil")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, nil)

	for _, res := range cfg.Resources {
		resource := res
		server.AddResource(&mcp.Resource{
			Name:        resource.Name,
			URI:         resource.URI,
			Description: resource.Description,
			MIMEType:    resource.MIMEType,
		}, func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{
					{URI: resource.URI, MIMEType: resource.MIMEType, Text: resource.Text},
				},
			}, nil
		})
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_employee_info",
		Description: "Get employee information (name and salary) by employee name",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in EmployeeQuery) (*mcp.CallToolResult, protocol.EmployeeInfo, error) {
		correlationID, err := b.begin(ctx, "get_employee_info", map[string]any{"name": in.Name})
		if err != nil {
			return nil, protocol.EmployeeInfo{}, err
		}
		info := directory.Lookup(in.Name)
		b.finish(ctx, "get_employee_info", correlationID, nil)
		return nil, info, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_company_by_name",
		Description: "Get a company by name",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in CompanyQuery) (*mcp.CallToolResult, protocol.Company, error) {
		correlationID, err := b.begin(ctx, "get_company_by_name", map[string]any{"company_name": in.CompanyName})
		if err != nil {
			return nil, protocol.Company{}, err
		}
		company, ok := b.Market.CompanyByName(in.CompanyName)
		if !ok {
			err := fmt.Errorf("%s", b.render("market.company_not_found", map[string]any{"Company": in.CompanyName},
				fmt.Sprintf("Company %s not found", in.CompanyName)))
			b.finish(ctx, "get_company_by_name", correlationID, err)
			return nil, protocol.Company{}, err
		}
		b.finish(ctx, "get_company_by_name", correlationID, nil)
		return nil, company, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_all_companies",
		Description: "Get All Companies",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyQuery) (*mcp.CallToolResult, protocol.CompanyList, error) {
		correlationID, err := b.begin(ctx, "get_all_companies", nil)
		if err != nil {
			return nil, protocol.CompanyList{}, err
		}
		list := protocol.CompanyList{Companies: b.Market.AllCompanies()}
		b.finish(ctx, "get_all_companies", correlationID, nil)
		return nil, list, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_by_company",
		Description: "Get the current stock quote for a company",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in CompanyQuery) (*mcp.CallToolResult, protocol.StockQuote, error) {
		correlationID, err := b.begin(ctx, "get_stock_by_company", map[string]any{"company_name": in.CompanyName})
		if err != nil {
			return nil, protocol.StockQuote{}, err
		}
		if b.Quotes != nil {
			if quote, ok := b.Quotes.Get(in.CompanyName); ok {
				if b.Audit != nil {
					b.Audit.Record(ctx, audit.Event{Type: audit.TypeCacheHit, Tool: "get_stock_by_company", CorrelationID: correlationID})
				}
				return nil, quote, nil
			}
		}
		quote := b.Market.Quote(in.CompanyName)
		if b.Quotes != nil {
			b.Quotes.Set(in.CompanyName, quote)
		}
		b.finish(ctx, "get_stock_by_company", correlationID, nil)
		return nil, quote, nil
	})

	return server, nil
}

// begin logs and audits the call and applies usage limits. A non-nil
// error means the call was denied.
func (b Builder) begin(ctx context.Context, tool string, args map[string]any) (string, error) {
	correlationID := uuid.NewString()

	if b.Logger != nil {
		b.Logger.Info("tool call", "tool", tool, "correlation_id", correlationID, "args", redactArguments(args))
	}
	if b.Audit != nil {
		b.Audit.Record(ctx, audit.Event{Type: audit.TypeToolCall, Tool: tool, CorrelationID: correlationID})
	}

	if b.Limits != nil {
		if ok, reason := b.Limits.Allow(tool); !ok {
			key, fallback := "limits.rate_limited", "rate limit exceeded"
			if reason == ratelimit.ReasonMaxTotal {
				key, fallback = "limits.max_total", "maximum number of calls exceeded"
			}
			message := b.render(key, nil, fallback)
			if b.Audit != nil {
				b.Audit.Record(ctx, audit.Event{Type: audit.TypeDenied, Tool: tool, CorrelationID: correlationID, Reason: message})
			}
			return correlationID, fmt.Errorf("%s", message)
		}
	}

	return correlationID, nil
}

func (b Builder) finish(ctx context.Context, tool, correlationID string, err error) {
	if err != nil {
		if b.Logger != nil {
			b.Logger.Warn("tool failed", "tool", tool, "correlation_id", correlationID, "error", err)
		}
		if b.Audit != nil {
			b.Audit.Record(ctx, audit.Event{Type: audit.TypeToolErr, Tool: tool, CorrelationID: correlationID, Reason: err.Error()})
		}
		return
	}
	if b.Audit != nil {
		b.Audit.Record(ctx, audit.Event{Type: audit.TypeToolOK, Tool: tool, CorrelationID: correlationID})
	}
}

func (b Builder) render(key string, data map[string]any, fallback string) string {
	if b.Templates == nil {
		return fallback
	}
	rendered, err := b.Templates.Render(key, data)
	if err != nil {
		return fallback
	}
	return rendered
}
