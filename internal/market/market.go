// Package market holds the company dataset and draws stock quotes.
package market

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fatimanet/hr-mcp-server/internal/dsl"
	"github.com/fatimanet/hr-mcp-server/internal/protocol"
)

// Quote price bounds.
const (
	quoteBase   = 100.0
	quoteSpread = 1000.0
)

// Store keeps the company dataset. The dataset can be swapped as a whole
// when the config file is reloaded; reads work on a consistent snapshot.
type Store struct {
	mu        sync.RWMutex
	companies []protocol.Company

	now  func() time.Time
	rand func() float64
}

// NewStore creates a store with the given dataset.
func NewStore(companies []protocol.Company) *Store {
	return &Store{
		companies: companies,
		now:       time.Now,
		rand:      rand.Float64,
	}
}

// CompanyByName returns the company with the exact given name.
func (s *Store) CompanyByName(name string) (protocol.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, company := range s.companies {
		if company.Name == name {
			return company, true
		}
	}
	return protocol.Company{}, false
}

// AllCompanies returns a copy of the dataset in configured order.
func (s *Store) AllCompanies() []protocol.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]protocol.Company, len(s.companies))
	copy(out, s.companies)
	return out
}

// Replace swaps the whole dataset.
func (s *Store) Replace(companies []protocol.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = companies
}

// Len returns the dataset size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.companies)
}

// Quote draws a stock quote for the company. The company name is echoed
// back and the price is random in [100, 1100); the company does not need
// to be present in the dataset.
func (s *Store) Quote(companyName string) protocol.StockQuote {
	return protocol.StockQuote{
		CompanyName: companyName,
		Date:        s.now().Format("2006-01-02"),
		Stock:       quoteBase + s.rand()*quoteSpread,
	}
}

// FromConfig converts config company entries into protocol records.
func FromConfig(entries []dsl.CompanyConfig) []protocol.Company {
	out := make([]protocol.Company, 0, len(entries))
	for _, entry := range entries {
		out = append(out, protocol.Company{
			Name:           entry.Name,
			Activity:       entry.Activity,
			Turnover:       entry.Turnover,
			EmployeesCount: entry.EmployeesCount,
			Country:        entry.Country,
		})
	}
	return out
}

// DefaultCompanies returns the built-in dataset used when the config
// declares no companies.
func DefaultCompanies() []protocol.Company {
	return []protocol.Company{
		{Name: "Maroc Telecom", Activity: "Telecom", Turnover: 3.6, EmployeesCount: 10600, Country: "Maroc"},
		{Name: "OCP", Activity: "Extraction minière", Turnover: 5.6, EmployeesCount: 20000, Country: "Maroc"},
	}
}
