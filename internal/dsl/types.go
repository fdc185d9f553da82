package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes the MCP server settings.
	Server ServerConfig `yaml:"server"`
	// Companies seeds the market dataset.
	Companies []CompanyConfig `yaml:"companies"`
	// Resources lists static resources.
	Resources []ResourceConfig `yaml:"resources"`
}

// ServerConfig defines MCP server settings.
type ServerConfig struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Transport selects the server transport ("http" or "stdio").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// RateLimit configures optional per-tool rate limiting.
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	// QuoteCache configures optional stock quote caching.
	QuoteCache QuoteCacheConfig `yaml:"quote_cache"`
	// WatchConfig enables hot reload of the company dataset.
	WatchConfig bool `yaml:"watch_config"`
	// HTTP configures HTTP transport.
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// RateLimitConfig limits tool usage.
type RateLimitConfig struct {
	// Enabled toggles rate limiting.
	Enabled bool `yaml:"enabled"`
	// PerMinute limits calls per minute for each tool.
	PerMinute int `yaml:"per_minute"`
	// Burst allows short bursts above the steady rate.
	Burst int `yaml:"burst"`
	// MaxTotal limits total calls per tool for the process lifetime.
	MaxTotal int `yaml:"max_total"`
}

// QuoteCacheConfig configures caching of stock quotes.
type QuoteCacheConfig struct {
	// Enabled toggles quote caching.
	Enabled bool `yaml:"enabled"`
	// TTL controls how long a quote is served before a fresh one is drawn.
	TTL string `yaml:"ttl"`
	// MaxEntries limits the cache size.
	MaxEntries int `yaml:"max_entries"`
}

// CompanyConfig declares one company in the market dataset.
type CompanyConfig struct {
	// Name is the company name, unique within the dataset.
	Name string `yaml:"name"`
	// Activity is the business sector.
	Activity string `yaml:"activity"`
	// Turnover is the yearly turnover in milliard MAD.
	Turnover float64 `yaml:"turnover"`
	// EmployeesCount is the headcount.
	EmployeesCount int `yaml:"employees_count"`
	// Country is the home country.
	Country string `yaml:"country"`
}

// ResourceConfig declares a static MCP resource.
type ResourceConfig struct {
	// Name is a human-friendly resource name.
	Name string `yaml:"name"`
	// URI is the resource identifier.
	URI string `yaml:"uri"`
	// Description explains the resource.
	Description string `yaml:"description"`
	// MIMEType sets the content type.
	MIMEType string `yaml:"mime_type"`
	// Text is the static resource content.
	Text string `yaml:"text"`
}
