package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogResolve(t *testing.T) {
	catalog := NewRequirementsCatalog()

	tests := []struct {
		name    string
		input   string
		want    ServiceType
		matched bool
	}{
		{"menu number one", "1", ServiceCompraVenta, true},
		{"menu number two", "2", ServiceDonacion, true},
		{"menu number three", "3", ServicePoderGeneral, true},
		{"name with space", "compra venta", ServiceCompraVenta, true},
		{"name with hyphen", "compra-venta", ServiceCompraVenta, true},
		{"accented name", "Donación", ServiceDonacion, true},
		{"unaccented name", "donacion", ServiceDonacion, true},
		{"uppercase", "PODER GENERAL", ServicePoderGeneral, true},
		{"short form", "poder", ServicePoderGeneral, true},
		{"surrounding whitespace", "  1  ", ServiceCompraVenta, true},
		{"free text", "necesito un testamento", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ok := catalog.Resolve(tt.input)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, service)
		})
	}
}

func TestCatalogServicesOrder(t *testing.T) {
	catalog := NewRequirementsCatalog()

	assert.Equal(t, []ServiceType{ServiceCompraVenta, ServiceDonacion, ServicePoderGeneral}, catalog.Services())
}

func TestCatalogRequirements(t *testing.T) {
	catalog := NewRequirementsCatalog()

	reqs, ok := catalog.Requirements(ServiceCompraVenta)
	require.True(t, ok)
	assert.Len(t, reqs, 7)
	assert.Equal(t, "Escritura", reqs[0])

	reqs, ok = catalog.Requirements(ServicePoderGeneral)
	require.True(t, ok)
	assert.Len(t, reqs, 4)

	_, ok = catalog.Requirements(ServiceType("testamento"))
	assert.False(t, ok)
}

func TestCatalogRequirementsReturnsCopy(t *testing.T) {
	catalog := NewRequirementsCatalog()

	reqs, ok := catalog.Requirements(ServiceDonacion)
	require.True(t, ok)
	reqs[0] = "mutated"

	fresh, _ := catalog.Requirements(ServiceDonacion)
	assert.Equal(t, "Escritura", fresh[0])
}

func TestCatalogDisplayName(t *testing.T) {
	catalog := NewRequirementsCatalog()

	assert.Equal(t, "Donación", catalog.DisplayName(ServiceDonacion))
	assert.Equal(t, "otro", catalog.DisplayName(ServiceType("otro")))
}

func TestCatalogKnown(t *testing.T) {
	catalog := NewRequirementsCatalog()

	assert.True(t, catalog.Known(ServiceCompraVenta))
	assert.False(t, catalog.Known(ServiceType("Compra Venta")))
}
