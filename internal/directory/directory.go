// Package directory answers employee info lookups.
//
// There is no backing data source: every employee resolves to the same
// fixed salary. The lookup is total and never fails, whatever the name.
package directory

import "github.com/fatimanet/hr-mcp-server/internal/protocol"

// DefaultSalary is the salary returned for every employee.
const DefaultSalary = 5400

// Lookup returns the info record for the given employee name.
// The name is echoed back unmodified, empty names included.
func Lookup(name string) protocol.EmployeeInfo {
	return protocol.EmployeeInfo{
		EmployeeName: name,
		Salary:       DefaultSalary,
	}
}
