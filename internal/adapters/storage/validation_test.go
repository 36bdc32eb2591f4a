package storage

import (
	"testing"

	"ecoleta/platform/apperr"
)

func TestValidateContentType(t *testing.T) {
	if err := validateContentType("image/SVG+xml; charset=utf-8"); err != nil {
		t.Fatalf("expected svg to be accepted, got %v", err)
	}
	err := validateContentType("application/pdf")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for pdf, got %v", err)
	}
}

func TestValidateFileSize(t *testing.T) {
	if err := validateFileSize(0, 10); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for empty file, got %v", err)
	}
	if err := validateFileSize(11, 10); apperr.GetKind(err) != apperr.KindTooLarge {
		t.Fatalf("expected too-large error, got %v", err)
	}
	if err := validateFileSize(10, 10); err != nil {
		t.Fatalf("expected file at limit to pass, got %v", err)
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{fileName: "lampadas.SVG", want: "items/lampadas_abcd1234.svg"},
		{fileName: "../../etc/passwd", want: "items/passwd_abcd1234"},
		{fileName: `C:\fotos\oleo.png`, want: "items/oleo_abcd1234.png"},
	}

	for _, tt := range tests {
		if got := ObjectKey("items", tt.fileName, "abcd1234"); got != tt.want {
			t.Fatalf("ObjectKey(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}
