package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainorder "nodal/internal/domain/order"
)

func TestNewOrderNo(t *testing.T) {
	no := domainorder.NewOrderNo(7, 1700000000000)
	assert.Equal(t, "ORD-7-1700000000000", no)
}

func TestOrder_Complete(t *testing.T) {
	o := &domainorder.Order{Status: domainorder.StatusPending}
	now := time.Now()

	o.Complete(now)

	assert.Equal(t, domainorder.StatusCompleted, o.Status)
	assert.NotNil(t, o.CompletedAt)
	assert.Equal(t, now, *o.CompletedAt)
}
