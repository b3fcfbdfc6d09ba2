package config

import (
	"fmt"
	"regexp"
)

// Tenant is a table-name prefix that isolates otherwise identical schemas
// per business account. The empty tenant addresses the unprefixed tables.
type Tenant string

// Tenant names end up spliced into SQL identifiers, so the charset is
// locked down hard.
var tenantPattern = regexp.MustCompile(`^[a-z0-9_]{1,32}$`)

func ResolveTenant(raw string) (Tenant, error) {
	if raw == "" {
		return "", nil
	}
	if !tenantPattern.MatchString(raw) {
		return "", fmt.Errorf("invalid tenant name %q", raw)
	}
	return Tenant(raw), nil
}

// Table returns the tenant-qualified name for one of the pipeline tables.
func (t Tenant) Table(name string) string {
	if t == "" {
		return name
	}
	return string(t) + "_" + name
}
