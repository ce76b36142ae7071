package pg

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"mate", "%mate%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\tmp`, `%c:\\tmp%`},
		{`%_\`, `%\%\_\\%`},
		{"", "%%"},
	}
	for _, c := range cases {
		if got := escapeLike(c.in); got != c.want {
			t.Fatalf("escapeLike(%q) got %q want %q", c.in, got, c.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID("123"); !errors.Is(err, core.ErrInvalidID) {
		t.Fatalf("malformed id: got %v want ErrInvalidID", err)
	}

	id := uuid.NewString()
	got, err := parseID(id)
	if err != nil {
		t.Fatalf("valid uuid: %v", err)
	}
	if got != id {
		t.Fatalf("roundtrip got %q want %q", got, id)
	}
}
