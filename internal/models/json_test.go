package models

import (
	"reflect"
	"testing"

	"gorm.io/datatypes"
)

func TestStringListRoundTrip(t *testing.T) {
	original := []string{"go", "web", "api"}
	encoded := StringListJSON(original)

	decoded := encoded.StringList()
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("Expected %v, got %v", original, decoded)
	}
}

func TestStringListEmptyAndInvalid(t *testing.T) {
	if got := StringListJSON(nil).StringList(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice for nil input, got %#v", got)
	}

	var zero JSON
	if got := zero.StringList(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice for a zero value, got %#v", got)
	}

	null := JSON{JSON: datatypes.JSON("null")}
	if got := null.StringList(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice for JSON null, got %#v", got)
	}

	garbage := JSON{JSON: datatypes.JSON(`{"not":"a list"}`)}
	if got := garbage.StringList(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice for a non-array value, got %#v", got)
	}
}
