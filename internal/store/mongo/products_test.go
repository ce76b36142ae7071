package mongo

import (
	"errors"
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dropDatabas3/mercadito/internal/store/core"
)

func TestSearchFilter_QuotesRegexMetacharacters(t *testing.T) {
	f := searchFilter("a.*b")

	or, ok := f["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("$or must have 3 branches, got %#v", f["$or"])
	}

	for _, branch := range or {
		for field, v := range branch {
			re, ok := v.(primitive.Regex)
			if !ok {
				t.Fatalf("%s: expected primitive.Regex, got %T", field, v)
			}
			if re.Options != "i" {
				t.Fatalf("%s: options got %q want \"i\"", field, re.Options)
			}
			compiled, err := regexp.Compile("(?i)" + re.Pattern)
			if err != nil {
				t.Fatalf("%s: pattern %q does not compile: %v", field, re.Pattern, err)
			}
			// Substring literal: matchea el texto tal cual
			if !compiled.MatchString("precio a.*b rebajado") {
				t.Fatalf("%s: pattern %q must match the literal query", field, re.Pattern)
			}
			// y los metacaracteres del query no actúan como wildcard
			if compiled.MatchString("axxb") {
				t.Fatalf("%s: pattern %q must not behave as a wildcard", field, re.Pattern)
			}
		}
	}
}

func TestSearchFilter_CoversAllFields(t *testing.T) {
	f := searchFilter("mate")

	seen := map[string]bool{}
	for _, branch := range f["$or"].([]bson.M) {
		for field := range branch {
			seen[field] = true
		}
	}
	for _, field := range []string{"name", "description", "category"} {
		if !seen[field] {
			t.Fatalf("search filter must cover %q, got %v", field, seen)
		}
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID("not-a-hex-objectid"); !errors.Is(err, core.ErrInvalidID) {
		t.Fatalf("malformed id: got %v want ErrInvalidID", err)
	}

	oid := primitive.NewObjectID()
	got, err := parseID(oid.Hex())
	if err != nil {
		t.Fatalf("valid hex: %v", err)
	}
	if got != oid {
		t.Fatalf("roundtrip got %s want %s", got.Hex(), oid.Hex())
	}
}
