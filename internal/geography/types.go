package geography

import "strings"

// ibgeState mirrors the fields used from GET /estados.
type ibgeState struct {
	Sigla string `json:"sigla"`
}

// ibgeCity mirrors the fields used from GET /estados/{uf}/municipios.
type ibgeCity struct {
	Nome string `json:"nome"`
}

// StatesResponse is returned by GET /api/v1/geography/states.
type StatesResponse struct {
	States []string `json:"states"`
}

// CitiesResponse is returned by GET /api/v1/geography/states/:uf/cities.
type CitiesResponse struct {
	UF     string   `json:"uf"`
	Cities []string `json:"cities"`
}

// NormalizeUF upper-cases a state code and reports whether it is two ASCII letters.
func NormalizeUF(uf string) (string, bool) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if len(uf) != 2 {
		return uf, false
	}
	for _, r := range uf {
		if r < 'A' || r > 'Z' {
			return uf, false
		}
	}
	return uf, true
}
