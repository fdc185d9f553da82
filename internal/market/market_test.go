package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatimanet/hr-mcp-server/internal/dsl"
	"github.com/fatimanet/hr-mcp-server/internal/protocol"
)

func TestCompanyByName(t *testing.T) {
	store := NewStore(DefaultCompanies())

	company, ok := store.CompanyByName("Maroc Telecom")
	require.True(t, ok)
	assert.Equal(t, "Telecom", company.Activity)
	assert.Equal(t, 10600, company.EmployeesCount)

	_, ok = store.CompanyByName("maroc telecom")
	assert.False(t, ok, "matching is exact")

	_, ok = store.CompanyByName("Unknown Corp")
	assert.False(t, ok)
}

func TestAllCompaniesReturnsCopy(t *testing.T) {
	store := NewStore(DefaultCompanies())

	all := store.AllCompanies()
	require.Len(t, all, 2)
	assert.Equal(t, "Maroc Telecom", all[0].Name)
	assert.Equal(t, "OCP", all[1].Name)

	all[0].Name = "mutated"
	again := store.AllCompanies()
	assert.Equal(t, "Maroc Telecom", again[0].Name)
}

func TestReplace(t *testing.T) {
	store := NewStore(DefaultCompanies())
	store.Replace([]protocol.Company{{Name: "Attijariwafa Bank", Activity: "Banque", Country: "Maroc"}})

	assert.Equal(t, 1, store.Len())
	_, ok := store.CompanyByName("OCP")
	assert.False(t, ok)
	_, ok = store.CompanyByName("Attijariwafa Bank")
	assert.True(t, ok)
}

func TestQuote(t *testing.T) {
	store := NewStore(DefaultCompanies())
	store.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }

	quote := store.Quote("OCP")
	assert.Equal(t, "OCP", quote.CompanyName)
	assert.Equal(t, "2026-08-25", quote.Date)
	assert.GreaterOrEqual(t, quote.Stock, 100.0)
	assert.Less(t, quote.Stock, 1100.0)
}

func TestQuoteBounds(t *testing.T) {
	store := NewStore(nil)

	store.rand = func() float64 { return 0 }
	assert.Equal(t, 100.0, store.Quote("OCP").Stock)

	store.rand = func() float64 { return 0.999999 }
	assert.Less(t, store.Quote("OCP").Stock, 1100.0)
}

func TestQuoteUnknownCompany(t *testing.T) {
	store := NewStore(DefaultCompanies())

	quote := store.Quote("Unknown Corp")
	assert.Equal(t, "Unknown Corp", quote.CompanyName)
	assert.GreaterOrEqual(t, quote.Stock, 100.0)
}

func TestFromConfig(t *testing.T) {
	companies := FromConfig([]dsl.CompanyConfig{
		{Name: "BMCE", Activity: "Banque", Turnover: 1.2, EmployeesCount: 5000, Country: "Maroc"},
	})
	require.Len(t, companies, 1)
	assert.Equal(t, protocol.Company{
		Name:           "BMCE",
		Activity:       "Banque",
		Turnover:       1.2,
		EmployeesCount: 5000,
		Country:        "Maroc",
	}, companies[0])
}
