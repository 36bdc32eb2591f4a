// Package domain holds the state of the "create collection point" form and
// the transitions the page is allowed to make on it.
package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Unselected is the value the UF and city dropdowns carry before a choice.
const Unselected = "0"

// Form field names accepted by SetField.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldWhatsapp = "whatsapp"
)

// ErrUnknownField is returned by SetField for names outside name/email/whatsapp.
var ErrUnknownField = errors.New("unknown form field")

// Position is a latitude/longitude pair in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// IsZero reports whether p is (0, 0), the "no map click yet" position.
func (p Position) IsZero() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

// DefaultPosition centres the map when the device position is unknown.
var DefaultPosition = Position{Latitude: -23.5029904, Longitude: -46.6415725}

// InitialPosition returns the geolocated position, or DefaultPosition when
// geolocation is unavailable.
func InitialPosition(geo *Position) Position {
	if geo == nil {
		return DefaultPosition
	}
	return *geo
}

// Payload is the body sent to the points API, built verbatim from the form.
type Payload struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Whatsapp  string  `json:"whatsapp"`
	UF        string  `json:"uf"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Items     []int64 `json:"items"`
}

// Form is the request-scoped state of the registration page. All changes go
// through its methods.
type Form struct {
	center   Position
	selected Position
	name     string
	email    string
	whatsapp string
	uf       string
	city     string
	items    []int64
}

// NewForm returns an empty form centred on initial. The selected map position
// starts at (0, 0) and both dropdowns start unselected.
func NewForm(initial Position) *Form {
	return &Form{
		center: initial,
		uf:     Unselected,
		city:   Unselected,
		items:  []int64{},
	}
}

// SetField updates one text field and leaves every other field untouched.
func (f *Form) SetField(name, value string) error {
	switch name {
	case FieldName:
		f.name = value
	case FieldEmail:
		f.email = value
	case FieldWhatsapp:
		f.whatsapp = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// SelectUF records the chosen state. When the value changes the city goes
// back to Unselected and the caller must reload the city list; the return
// value reports that.
func (f *Form) SelectUF(uf string) bool {
	uf = strings.TrimSpace(uf)
	if uf == "" {
		uf = Unselected
	}
	if uf == f.uf {
		return false
	}
	f.uf = uf
	f.city = Unselected
	return true
}

// SelectCity records the chosen city.
func (f *Form) SelectCity(city string) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = Unselected
	}
	f.city = city
}

// ClickMap moves the selected position to exactly (lat, lng).
func (f *Form) ClickMap(lat, lng float64) {
	f.selected = Position{Latitude: lat, Longitude: lng}
}

// ToggleItem adds id when absent and removes it when present.
func (f *Form) ToggleItem(id int64) {
	for i, existing := range f.items {
		if existing == id {
			f.items = append(f.items[:i:i], f.items[i+1:]...)
			return
		}
	}
	f.items = append(f.items, id)
}

// IsSelected reports whether id is in the selected item collection.
func (f *Form) IsSelected(id int64) bool {
	for _, existing := range f.items {
		if existing == id {
			return true
		}
	}
	return false
}

// SelectedItems returns a copy of the selected item ids in selection order.
func (f *Form) SelectedItems() []int64 {
	return append([]int64{}, f.items...)
}

func (f *Form) Name() string               { return f.name }
func (f *Form) Email() string              { return f.email }
func (f *Form) Whatsapp() string           { return f.whatsapp }
func (f *Form) UF() string                 { return f.uf }
func (f *Form) City() string               { return f.city }
func (f *Form) Center() Position           { return f.center }
func (f *Form) SelectedPosition() Position { return f.selected }

// HasUF reports whether a real state is selected.
func (f *Form) HasUF() bool {
	return f.uf != Unselected
}

// Payload assembles the request body. Nothing is trimmed or validated here.
func (f *Form) Payload() Payload {
	return Payload{
		Name:      f.name,
		Email:     f.email,
		Whatsapp:  f.whatsapp,
		UF:        f.uf,
		City:      f.city,
		Latitude:  f.selected.Latitude,
		Longitude: f.selected.Longitude,
		Items:     f.SelectedItems(),
	}
}

// Form value names used by the page.
const (
	ValueUF        = "uf"
	ValueCity      = "city"
	ValueLoadedUF  = "loaded_uf"
	ValueLatitude  = "latitude"
	ValueLongitude = "longitude"
	ValueItems     = "items"
)

// FormFromValues rebuilds a form from submitted page values. loaded_uf names
// the state whose cities the page was showing; when uf differs from it the
// city is reset exactly as SelectUF does.
func FormFromValues(values url.Values, center Position) (*Form, error) {
	return formFromValues(values, center, true)
}

// PartialFormFromValues is the lenient FormFromValues: a malformed coordinate
// leaves the marker unset and a malformed item id is skipped, so a rejected
// submission can be shown again with everything else the user entered.
func PartialFormFromValues(values url.Values, center Position) *Form {
	f, _ := formFromValues(values, center, false)
	return f
}

func formFromValues(values url.Values, center Position, strict bool) (*Form, error) {
	f := NewForm(center)

	for _, field := range []string{FieldName, FieldEmail, FieldWhatsapp} {
		_ = f.SetField(field, values.Get(field))
	}

	loaded := values.Get(ValueLoadedUF)
	if loaded == "" {
		loaded = values.Get(ValueUF)
	}
	f.SelectUF(loaded)
	f.SelectCity(values.Get(ValueCity))
	f.SelectUF(values.Get(ValueUF))

	lat, latErr := parseCoordinate(values.Get(ValueLatitude))
	lng, lngErr := parseCoordinate(values.Get(ValueLongitude))
	switch {
	case latErr != nil && strict:
		return nil, fmt.Errorf("latitude: %w", latErr)
	case lngErr != nil && strict:
		return nil, fmt.Errorf("longitude: %w", lngErr)
	case latErr == nil && lngErr == nil:
		f.ClickMap(lat, lng)
	}

	for _, raw := range values[ValueItems] {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			if strict {
				return nil, fmt.Errorf("items: %w", err)
			}
			continue
		}
		if !f.IsSelected(id) {
			f.ToggleItem(id)
		}
	}

	return f, nil
}

func parseCoordinate(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
