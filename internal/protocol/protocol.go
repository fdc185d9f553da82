package protocol

// EmployeeInfo is the record returned by the get_employee_info tool.
type EmployeeInfo struct {
	// EmployeeName echoes the requested name unmodified.
	EmployeeName string `json:"employee_name"`
	// Salary is the fixed salary value.
	Salary int `json:"salary"`
}

// Company describes one company in the market dataset.
type Company struct {
	// Name is the company name.
	Name string `json:"name"`
	// Activity is the business sector.
	Activity string `json:"activity"`
	// Turnover is the yearly turnover in milliard MAD.
	Turnover float64 `json:"turnover"`
	// EmployeesCount is the headcount.
	EmployeesCount int `json:"employees_count"`
	// Country is the home country.
	Country string `json:"country"`
}

// CompanyList wraps the full dataset returned by get_all_companies.
type CompanyList struct {
	// Companies holds the dataset in configured order.
	Companies []Company `json:"companies"`
}

// StockQuote is the quote returned by get_stock_by_company.
type StockQuote struct {
	// CompanyName is the quoted company.
	CompanyName string `json:"company_name"`
	// Date is the quote day in YYYY-MM-DD form.
	Date string `json:"date"`
	// Stock is the quoted price.
	Stock float64 `json:"stock"`
}
