package entitlement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nodal/internal/domain/entitlement"
)

func TestUserPackage_IsCurrent(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		pkg  entitlement.UserPackage
		want bool
	}{
		{
			name: "active not expired not exhausted",
			pkg:  entitlement.UserPackage{Status: entitlement.StatusActive, ExpiresAt: now.Add(time.Hour), TrafficQuota: 100, TrafficUsed: 50},
			want: true,
		},
		{
			name: "expired status",
			pkg:  entitlement.UserPackage{Status: entitlement.StatusExpired, ExpiresAt: now.Add(time.Hour), TrafficQuota: 100, TrafficUsed: 50},
			want: false,
		},
		{
			name: "past expiry",
			pkg:  entitlement.UserPackage{Status: entitlement.StatusActive, ExpiresAt: now.Add(-time.Hour), TrafficQuota: 100, TrafficUsed: 50},
			want: false,
		},
		{
			name: "quota exhausted",
			pkg:  entitlement.UserPackage{Status: entitlement.StatusActive, ExpiresAt: now.Add(time.Hour), TrafficQuota: 100, TrafficUsed: 100},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pkg.IsCurrent(now))
		})
	}
}
