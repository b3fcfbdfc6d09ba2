package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTenant(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    Tenant
		expectError bool
	}{
		{"empty means default namespace", "", "", false},
		{"simple name", "milano", "milano", false},
		{"digits and underscore", "salon_2", "salon_2", false},
		{"uppercase rejected", "Milano", "", true},
		{"dash rejected", "salon-2", "", true},
		{"sql injection rejected", "a;drop table clients", "", true},
		{"too long rejected", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := ResolveTenant(tt.raw)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tenant)
		})
	}
}

func TestTenantTable(t *testing.T) {
	assert.Equal(t, "appointments", Tenant("").Table("appointments"))
	assert.Equal(t, "milano_appointments", Tenant("milano").Table("appointments"))
}
