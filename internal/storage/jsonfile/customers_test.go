package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smontiel/partstore/internal/domain/customer"
)

// legacyCustomers mixes an individual and an organization, with nulls for
// unset optional fields as the previous system wrote them.
const legacyCustomers = `[
    {
        "nombre": "Ana",
        "apellido": "Perez",
        "cedula_rif": "V-123",
        "correo_electronico": "ana@example.com",
        "direccion_envio": null,
        "telefono": "0414-5551234"
    },
    {
        "nombre": "",
        "apellido": "",
        "cedula_rif": "J-456",
        "correo_electronico": "ventas@repuestos.example",
        "direccion_envio": "Av. Bolivar 12",
        "telefono": "0212-5550000",
        "razon_social": "Repuestos CA",
        "nombre_contacto": "Luis Gomez",
        "telefono_contacto": "0424-5559999",
        "correo_contacto": "luis@repuestos.example"
    }
]`

func customersPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "clientes.json")
}

func TestCustomerStoreLoad_LegacyFile(t *testing.T) {
	path := customersPath(t)
	require.NoError(t, os.WriteFile(path, []byte(legacyCustomers), 0o644))

	customers, err := NewCustomerStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)

	ind := customers[0]
	assert.Equal(t, customer.KindIndividual, ind.Kind)
	assert.Equal(t, "V-123", ind.ID)
	assert.Equal(t, "Ana", ind.FirstName)
	assert.Equal(t, "", ind.ShippingAddress)

	org := customers[1]
	assert.Equal(t, customer.KindOrganization, org.Kind)
	assert.Equal(t, "Repuestos CA", org.LegalName)
	assert.Equal(t, "Luis Gomez", org.ContactName)
}

func TestCustomerStoreLoad_AbsentFile(t *testing.T) {
	customers, err := NewCustomerStore(customersPath(t)).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestCustomerStore_RoundTrip(t *testing.T) {
	path := customersPath(t)
	store := NewCustomerStore(path)

	in := []customer.Customer{
		{
			Kind: customer.KindIndividual, ID: "V-1",
			FirstName: "Ana", LastName: "Perez",
			Email: "ana@example.com", Phone: "0414-5551234",
		},
		{
			Kind: customer.KindOrganization, ID: "J-2",
			LegalName: "Repuestos CA", ContactName: "Luis",
			ContactPhone: "0424-5559999", ContactEmail: "luis@repuestos.example",
		},
	}
	require.NoError(t, store.Save(context.Background(), in))

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[1], out[1])
}

func TestCustomerStoreSave_OrganizationFieldsOnlyForOrganizations(t *testing.T) {
	path := customersPath(t)
	store := NewCustomerStore(path)

	require.NoError(t, store.Save(context.Background(), []customer.Customer{
		{Kind: customer.KindIndividual, ID: "V-1", FirstName: "Ana"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "razon_social")
	assert.NotContains(t, string(data), "nombre_contacto")
}
