package models

// Role identifies one of the two counterparties to a trade.
type Role string

// Role constants
const (
	RoleExporter Role = "EXPORTER"
	RoleImporter Role = "IMPORTER"
)

// Counterpart returns the other party's role.
func (r Role) Counterpart() Role {
	if r == RoleExporter {
		return RoleImporter
	}
	return RoleExporter
}

// IsValid reports whether r is a known role value.
func (r Role) IsValid() bool {
	return r == RoleExporter || r == RoleImporter
}
