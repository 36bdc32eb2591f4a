package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := map[string]string{
		"  Recicla   Tudo  ":                        "Recicla Tudo",
		"<b>Mercado</b> do Bairro":                  "Mercado do Bairro",
		"&lt;script&gt;alert(1)&lt;/script&gt;Eco": "alert(1)Eco",
		"São\tPaulo\n":                              "São Paulo",
	}

	for input, want := range tests {
		if got := Text(input); got != want {
			t.Fatalf("Text(%q) = %q, want %q", input, got, want)
		}
	}
}
