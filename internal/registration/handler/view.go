package handler

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"ecoleta/internal/registration/domain"
	"ecoleta/internal/registration/service"
	"ecoleta/platform/apperr"
)

const (
	placeholderUF   = "Selecione uma UF"
	placeholderCity = "Selecione uma cidade"
	createdMessage  = "Ponto de coleta criado!"

	msgItemsUnavailable  = "Não foi possível carregar os ítens de coleta."
	msgStatesUnavailable = "Não foi possível carregar a lista de estados."
	msgCitiesUnavailable = "Não foi possível carregar a lista de cidades."
	msgInvalidForm       = "Os dados enviados são inválidos."
	msgCheckFields       = "Verifique os campos destacados e tente novamente."
	msgServiceDown       = "Serviço indisponível no momento. Tente novamente em instantes."
	msgSubmitFailed      = "Não foi possível cadastrar o ponto de coleta."
	msgTooManyAttempts   = "Muitas tentativas. Aguarde um minuto e tente novamente."

	hintLat = "lat"
	hintLng = "lng"
)

var fieldMessages = map[string]string{
	"name":      "Informe o nome da entidade.",
	"email":     "Informe um e-mail válido.",
	"whatsapp":  "Informe um número de WhatsApp válido.",
	"uf":        "Selecione uma UF.",
	"city":      "Selecione uma cidade.",
	"latitude":  "Selecione uma posição válida no mapa.",
	"longitude": "Selecione uma posição válida no mapa.",
	"items":     "Selecione ao menos um ítem de coleta.",
}

type option struct {
	Value    string
	Selected bool
}

type itemTile struct {
	ID       int64
	Title    string
	ImageURL string
	Selected bool
}

type mapView struct {
	TileURL string
	Center  domain.Position
	Marker  domain.Position
	Hinted  bool
}

type pageView struct {
	Name        string
	Email       string
	Whatsapp    string
	UF          string
	Items       []itemTile
	UFs         []option
	Cities      []option
	Map         mapView
	Errors      []string
	FieldErrors map[string]string
}

type citiesView struct {
	Cities []option
}

type homeView struct {
	Flash string
}

func buildPageView(form *domain.Form, page service.Page, tileURL string, hinted bool) pageView {
	view := pageView{
		Name:     form.Name(),
		Email:    form.Email(),
		Whatsapp: form.Whatsapp(),
		UF:       form.UF(),
		Items:    make([]itemTile, 0, len(page.Items)),
		UFs:      options(page.UFs, form.UF()),
		Cities:   options(page.Cities, form.City()),
		Map: mapView{
			TileURL: tileURL,
			Center:  form.Center(),
			Marker:  form.SelectedPosition(),
			Hinted:  hinted,
		},
	}

	for _, item := range page.Items {
		view.Items = append(view.Items, itemTile{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Selected: form.IsSelected(item.ID),
		})
	}

	if page.ItemsErr != nil {
		view.Errors = append(view.Errors, msgItemsUnavailable)
	}
	if page.UFsErr != nil {
		view.Errors = append(view.Errors, msgStatesUnavailable)
	}
	if page.CitiesErr != nil {
		view.Errors = append(view.Errors, msgCitiesUnavailable)
	}
	return view
}

func options(values []string, selected string) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: v, Selected: v == selected})
	}
	return out
}

// centerFromHints reads the lat/lng the page script forwards after the
// browser reports the device position. Without usable hints the map centres
// on fallback.
func centerFromHints(values url.Values, fallback domain.Position) (domain.Position, bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(values.Get(hintLat)), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(values.Get(hintLng)), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fallback, false
	}
	return domain.InitialPosition(&domain.Position{Latitude: lat, Longitude: lng}), true
}

// submitErrors turns a create failure into the banner and per-field messages.
func submitErrors(err error) (string, map[string]string) {
	appErr, ok := apperr.As(err)
	if !ok {
		return msgSubmitFailed, nil
	}

	switch appErr.Kind {
	case apperr.KindValidation, apperr.KindBadRequest:
		return msgCheckFields, fieldErrorMessages(appErr.Details)
	case apperr.KindUnavailable:
		return msgServiceDown, nil
	default:
		return msgSubmitFailed, nil
	}
}

func fieldErrorMessages(details interface{}) map[string]string {
	var fields []string
	switch d := details.(type) {
	case map[string]string:
		for k := range d {
			fields = append(fields, k)
		}
	case map[string][]int64:
		for k := range d {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)

	out := make(map[string]string, len(fields))
	for _, field := range fields {
		if msg, ok := fieldMessages[field]; ok {
			out[field] = msg
		}
	}
	return out
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
