package domain

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleItemTwiceRestoresCollection(t *testing.T) {
	f := NewForm(DefaultPosition)
	f.ToggleItem(1)
	f.ToggleItem(4)
	before := f.SelectedItems()

	for _, id := range []int64{4, 2} {
		f.ToggleItem(id)
		f.ToggleItem(id)
		assert.ElementsMatch(t, before, f.SelectedItems(), "toggling %d twice", id)
	}
}

func TestToggleItemMembership(t *testing.T) {
	f := NewForm(DefaultPosition)
	f.ToggleItem(3)
	assert.True(t, f.IsSelected(3))
	f.ToggleItem(3)
	assert.False(t, f.IsSelected(3))
	assert.Empty(t, f.SelectedItems())
}

func TestSelectedItemsReturnsCopy(t *testing.T) {
	f := NewForm(DefaultPosition)
	f.ToggleItem(1)

	items := f.SelectedItems()
	items[0] = 99
	assert.Equal(t, []int64{1}, f.SelectedItems())
}

func TestClickMapSetsExactPosition(t *testing.T) {
	f := NewForm(DefaultPosition)
	assert.True(t, f.SelectedPosition().IsZero())

	f.ClickMap(-22.9068467, -43.1728965)
	assert.Equal(t, Position{Latitude: -22.9068467, Longitude: -43.1728965}, f.SelectedPosition())
	assert.Equal(t, DefaultPosition, f.Center())
}

func TestInitialPositionFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Position{Latitude: -23.5029904, Longitude: -46.6415725}, InitialPosition(nil))

	geo := Position{Latitude: -15.79, Longitude: -47.88}
	assert.Equal(t, geo, InitialPosition(&geo))
}

func TestSetFieldIsolation(t *testing.T) {
	f := NewForm(DefaultPosition)
	require.NoError(t, f.SetField(FieldName, "Recicla"))
	require.NoError(t, f.SetField(FieldEmail, "a@b.com"))
	require.NoError(t, f.SetField(FieldWhatsapp, "11999999999"))

	require.NoError(t, f.SetField(FieldEmail, "novo@b.com"))
	assert.Equal(t, "Recicla", f.Name())
	assert.Equal(t, "novo@b.com", f.Email())
	assert.Equal(t, "11999999999", f.Whatsapp())

	err := f.SetField("uf", "SP")
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.Equal(t, Unselected, f.UF())
}

func TestSelectUFResetsCityOnChange(t *testing.T) {
	f := NewForm(DefaultPosition)
	assert.False(t, f.HasUF())

	assert.True(t, f.SelectUF("SP"))
	f.SelectCity("Campinas")

	assert.False(t, f.SelectUF("SP"))
	assert.Equal(t, "Campinas", f.City())

	assert.True(t, f.SelectUF("RJ"))
	assert.Equal(t, Unselected, f.City())
}

func TestPayloadIsVerbatim(t *testing.T) {
	f := NewForm(DefaultPosition)
	_ = f.SetField(FieldName, "  Recicla  ")
	_ = f.SetField(FieldEmail, "A@B.com")
	_ = f.SetField(FieldWhatsapp, "(11) 9999-9999")
	f.SelectUF("SP")
	f.SelectCity("São Paulo")
	f.ClickMap(-23.5, -46.6)
	f.ToggleItem(2)
	f.ToggleItem(5)

	assert.Equal(t, Payload{
		Name:      "  Recicla  ",
		Email:     "A@B.com",
		Whatsapp:  "(11) 9999-9999",
		UF:        "SP",
		City:      "São Paulo",
		Latitude:  -23.5,
		Longitude: -46.6,
		Items:     []int64{2, 5},
	}, f.Payload())
}

func TestPayloadBeforeMapClickIsOrigin(t *testing.T) {
	p := NewForm(DefaultPosition).Payload()
	assert.Equal(t, 0.0, p.Latitude)
	assert.Equal(t, 0.0, p.Longitude)
	assert.Equal(t, Unselected, p.UF)
	assert.Equal(t, Unselected, p.City)
	assert.Equal(t, []int64{}, p.Items)
}

func TestFormFromValues(t *testing.T) {
	values := url.Values{
		"name":      {"Recicla"},
		"email":     {"a@b.com"},
		"whatsapp":  {"11999999999"},
		"uf":        {"SP"},
		"loaded_uf": {"SP"},
		"city":      {"Campinas"},
		"latitude":  {"-22.9"},
		"longitude": {"-47.06"},
		"items":     {"3", "1", "3"},
	}

	f, err := FormFromValues(values, DefaultPosition)
	require.NoError(t, err)
	assert.Equal(t, "Campinas", f.City())
	assert.Equal(t, Position{Latitude: -22.9, Longitude: -47.06}, f.SelectedPosition())
	assert.Equal(t, []int64{3, 1}, f.SelectedItems())
}

func TestFormFromValuesResetsStaleCity(t *testing.T) {
	values := url.Values{
		"uf":        {"RJ"},
		"loaded_uf": {"SP"},
		"city":      {"Campinas"},
	}

	f, err := FormFromValues(values, DefaultPosition)
	require.NoError(t, err)
	assert.Equal(t, "RJ", f.UF())
	assert.Equal(t, Unselected, f.City())
}

func TestFormFromValuesRejectsMalformedNumbers(t *testing.T) {
	_, err := FormFromValues(url.Values{"latitude": {"north"}}, DefaultPosition)
	assert.Error(t, err)

	_, err = FormFromValues(url.Values{"items": {"lamp"}}, DefaultPosition)
	assert.Error(t, err)
}

func TestPartialFormFromValuesKeepsWhatParses(t *testing.T) {
	values := url.Values{
		"name":      {"Recicla"},
		"email":     {"a@b.com"},
		"whatsapp":  {"11999999999"},
		"uf":        {"SP"},
		"city":      {"Campinas"},
		"latitude":  {"north"},
		"longitude": {"-47.06"},
		"items":     {"2", "lamp", "1"},
	}

	f := PartialFormFromValues(values, DefaultPosition)
	require.NotNil(t, f)
	assert.Equal(t, "Recicla", f.Name())
	assert.Equal(t, "a@b.com", f.Email())
	assert.Equal(t, "11999999999", f.Whatsapp())
	assert.Equal(t, "SP", f.UF())
	assert.Equal(t, "Campinas", f.City())
	assert.Equal(t, Position{}, f.SelectedPosition())
	assert.Equal(t, []int64{2, 1}, f.SelectedItems())
}
