package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domaincatalog "nodal/internal/domain/catalog"
)

func TestPackage_EnsurePurchasable(t *testing.T) {
	active := &domaincatalog.Package{IsActive: true}
	assert.NoError(t, active.EnsurePurchasable())

	inactive := &domaincatalog.Package{IsActive: false}
	assert.ErrorContains(t, inactive.EnsurePurchasable(), "not active")
}
