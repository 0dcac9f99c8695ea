package inventory

import "testing"

func TestNormalizeImageURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{raw: "", want: ""},
		{raw: "   ", want: ""},
		{raw: "https://cdn.example.com/a.jpg", want: "https://cdn.example.com/a.jpg"},
		{raw: " http://cdn.example.com/a.jpg ", want: "http://cdn.example.com/a.jpg"},
		{raw: "/static/a.jpg", want: "https://inv.example.com/static/a.jpg"},
		{raw: "static/a.jpg", want: "https://inv.example.com/static/a.jpg"},
	}
	for _, tc := range cases {
		if got := normalizeImageURL("https://inv.example.com/", tc.raw); got != tc.want {
			t.Fatalf("normalizeImageURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCapitalizeFirst(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "   ", want: "   "},
		{in: "ergonómica", want: "Ergonómica"},
		{in: "  ruedas", want: "  Ruedas"},
		{in: "ñandú", want: "Ñandú"},
		{in: "e\u0301xito", want: "Éxito"},
		{in: "Ya en mayúscula", want: "Ya en mayúscula"},
		{in: "1 año garantía", want: "1 año garantía"},
	}
	for _, tc := range cases {
		if got := capitalizeFirst(tc.in); got != tc.want {
			t.Fatalf("capitalizeFirst(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	products := []Product{
		{ID: "1", Category: "Operativa"},
		{ID: "2", Category: "Gerencial"},
		{ID: "3", Category: "Operativa"},
	}

	if got := FilterByCategory(products, ""); len(got) != 3 {
		t.Fatalf("empty category should keep all, got %d", len(got))
	}
	if got := FilterByCategory(products, "todos"); len(got) != 3 {
		t.Fatalf("todos should keep all, got %d", len(got))
	}
	got := FilterByCategory(products, "Operativa")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if got := FilterByCategory(products, "Lounge"); len(got) != 0 {
		t.Fatalf("expected no lounge products, got %d", len(got))
	}
}

func TestFormatCm(t *testing.T) {
	v := 120.5
	if got := FormatCm(&v); got != "120.5" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatCm(nil); got != "?" {
		t.Fatalf("unknown measurement should render ?, got %q", got)
	}
}
