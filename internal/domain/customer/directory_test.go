package customer

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockStore struct {
	customers []Customer
	loadErr   error
	saveErr   error
	saved     []Customer
}

func (m *mockStore) Load(_ context.Context) ([]Customer, error) {
	return m.customers, m.loadErr
}

func (m *mockStore) Save(_ context.Context, customers []Customer) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append([]Customer(nil), customers...)
	return nil
}

// --- Helpers ---

func individual(id string) Customer {
	return Customer{Kind: KindIndividual, ID: id, FirstName: "Ana", LastName: "Perez"}
}

func organization(id string) Customer {
	return Customer{Kind: KindOrganization, ID: id, LegalName: "Repuestos CA"}
}

// --- Tests ---

func TestRegister_Individual(t *testing.T) {
	store := &mockStore{}
	d := NewDirectory(store)

	require.NoError(t, d.Register(context.Background(), individual("V-1")))
	assert.Len(t, store.saved, 1)
}

func TestRegister_DuplicateID(t *testing.T) {
	d := NewDirectory(&mockStore{})
	require.NoError(t, d.Register(context.Background(), individual("V-1")))

	err := d.Register(context.Background(), individual("V-1"))
	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, d.All(), 1)
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
	}{
		{"missing kind", Customer{ID: "V-1", FirstName: "Ana"}},
		{"unknown kind", Customer{Kind: "Acme", ID: "V-1", FirstName: "Ana"}},
		{"missing id", Customer{Kind: KindIndividual, FirstName: "Ana"}},
		{"individual without first name", Customer{Kind: KindIndividual, ID: "V-1"}},
		{"organization without legal name", Customer{Kind: KindOrganization, ID: "J-1"}},
		{"bad email", Customer{Kind: KindIndividual, ID: "V-1", FirstName: "Ana", Email: "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDirectory(&mockStore{})
			err := d.Register(context.Background(), tt.customer)
			require.Error(t, err)
			assert.Empty(t, d.All())
		})
	}
}

func TestFind_ByIDAndEmail(t *testing.T) {
	d := NewDirectory(&mockStore{})
	c := individual("V-1")
	c.Email = "ana@example.com"
	require.NoError(t, d.Register(context.Background(), c))

	byID, err := d.Find(context.Background(), "V-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.FirstName)

	byEmail, err := d.Find(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "V-1", byEmail.ID)

	_, err = d.Find(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = d.Find(context.Background(), "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	store := &mockStore{}
	d := NewDirectory(store)
	require.NoError(t, d.Register(context.Background(), organization("J-1")))

	updated := organization("J-1")
	updated.LegalName = "Repuestos 2000 CA"
	require.NoError(t, d.Update(context.Background(), updated))

	got, err := d.Find(context.Background(), "J-1")
	require.NoError(t, err)
	assert.Equal(t, "Repuestos 2000 CA", got.LegalName)
}

func TestUpdate_NotFound(t *testing.T) {
	d := NewDirectory(&mockStore{})
	err := d.Update(context.Background(), individual("V-9"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	d := NewDirectory(&mockStore{})
	require.NoError(t, d.Register(context.Background(), individual("V-1")))

	require.NoError(t, d.Remove(context.Background(), "V-1"))
	assert.Empty(t, d.All())

	require.ErrorIs(t, d.Remove(context.Background(), "V-1"), ErrNotFound)
}

func TestLoad_StoreErrorStartsEmpty(t *testing.T) {
	d := NewDirectory(&mockStore{loadErr: errors.New("corrupt")})
	d.Load(context.Background())
	assert.Empty(t, d.All())
}

func TestDisplayName(t *testing.T) {
	ind := individual("V-1")
	assert.Equal(t, "Ana Perez", ind.DisplayName())

	org := organization("J-1")
	assert.Equal(t, "Repuestos CA", org.DisplayName())
}
