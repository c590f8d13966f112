package uierr

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestReduceNilInputs(t *testing.T) {
	if got := Reduce(nil); len(got) != 0 {
		t.Errorf("Reduce(nil) = %v, want empty", got)
	}

	var typedNilMap map[string]any
	if got := Reduce(typedNilMap); len(got) != 0 {
		t.Errorf("Reduce(nil map) = %v, want empty", got)
	}

	var typedNilSlice []any
	if got := Reduce(typedNilSlice); len(got) != 0 {
		t.Errorf("Reduce(nil slice) = %v, want empty", got)
	}

	var typedNilPtr *struct{}
	if got := Reduce(typedNilPtr); len(got) != 0 {
		t.Errorf("Reduce(nil pointer) = %v, want empty", got)
	}
}

func TestReducePlainString(t *testing.T) {
	got := Reduce("something broke")
	want := []string{"something broke"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce(string) = %v, want %v", got, want)
	}
}

func TestReduceTopLevelMessage(t *testing.T) {
	got := Reduce(map[string]any{"message": "request failed"})
	want := []string{"request failed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceBodyMessage(t *testing.T) {
	got := Reduce(map[string]any{
		"body": map[string]any{"message": "record not found"},
	})
	want := []string{"record not found"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceBodyMessageBeforeTopLevelMessage(t *testing.T) {
	got := Reduce(map[string]any{
		"body":    map[string]any{"message": "inner"},
		"message": "outer",
	})
	want := []string{"inner"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReducePageErrors(t *testing.T) {
	got := Reduce(map[string]any{
		"pageErrors": []any{
			map[string]any{"message": "a"},
			map[string]any{"message": "b"},
		},
	})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceFieldErrorsSortedByField(t *testing.T) {
	// Field order is pinned lexicographically: Email before FirstName.
	got := Reduce(map[string]any{
		"fieldErrors": map[string]any{
			"FirstName": []any{map[string]any{"message": "required"}},
			"Email":     []any{map[string]any{"message": "invalid"}},
		},
	})
	want := []string{"invalid", "required"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceFieldErrorsWithinFieldOrder(t *testing.T) {
	got := Reduce(map[string]any{
		"fieldErrors": map[string]any{
			"Email": []any{
				map[string]any{"message": "first"},
				map[string]any{"message": "second"},
			},
		},
	})
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceMixedList(t *testing.T) {
	got := Reduce([]any{
		map[string]any{"message": "x"},
		"y",
		map[string]any{"body": map[string]any{"message": "z"}},
	})
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceNestedListFlattens(t *testing.T) {
	got := Reduce([]any{
		[]any{"a", []any{"b"}},
		map[string]any{"message": "c"},
	})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceUnknownShape(t *testing.T) {
	for _, input := range []any{
		map[string]any{"foo": 1},
		42,
		struct{ X int }{X: 1},
		map[string]any{},
	} {
		got := Reduce(input)
		want := []string{Fallback}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Reduce(%#v) = %v, want %v", input, got, want)
		}
	}
}

func TestReduceUnknownListElementFallsBack(t *testing.T) {
	// An unrecognizable element keeps its slot as the fallback string instead
	// of silently vanishing from the output.
	got := Reduce([]any{
		map[string]any{"foo": 1},
		"y",
	})
	want := []string{Fallback, "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}

	got = Reduce([]any{42, []any{struct{}{}}, "tail"})
	want = []string{Fallback, Fallback, "tail"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReducePageErrorsPrecedesMessage(t *testing.T) {
	got := Reduce(map[string]any{
		"pageErrors": []any{map[string]any{"message": "page"}},
		"message":    "top",
	})
	want := []string{"page"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReducePageErrorsPrecedeFieldErrors(t *testing.T) {
	got := Reduce(map[string]any{
		"pageErrors":  []any{map[string]any{"message": "page"}},
		"fieldErrors": map[string]any{"Email": []any{map[string]any{"message": "field"}}},
	})
	want := []string{"page"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceEmptyPageErrorsFallsThrough(t *testing.T) {
	// An empty page-errors sequence does not match; the message rule applies.
	got := Reduce(map[string]any{
		"pageErrors": []any{},
		"message":    "top",
	})
	want := []string{"top"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceGoError(t *testing.T) {
	got := Reduce(errors.New("dial tcp: connection refused"))
	want := []string{"dial tcp: connection refused"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceEmptyListYieldsFallback(t *testing.T) {
	got := Reduce([]any{})
	want := []string{Fallback}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceBlankMessagesDropped(t *testing.T) {
	got := Reduce([]any{
		map[string]any{"message": ""},
		map[string]any{"message": "kept"},
	})
	want := []string{"kept"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceTypedSliceAndMap(t *testing.T) {
	got := Reduce([]string{"a", "b"})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce([]string) = %v, want %v", got, want)
	}

	got = Reduce(map[string]string{"message": "typed"})
	want = []string{"typed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce(map[string]string) = %v, want %v", got, want)
	}
}

func TestReduceDecodedJSON(t *testing.T) {
	// Payloads arrive as decoded JSON in practice; run one through the real
	// decoder to make sure nothing depends on hand-built maps.
	raw := `{"fieldErrors":{"Email":[{"message":"invalid"}],"FirstName":[{"message":"required"}]}}`
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Reduce(payload)
	want := []string{"invalid", "required"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceIdempotent(t *testing.T) {
	input := map[string]any{
		"pageErrors": []any{map[string]any{"message": "a"}},
	}
	first := Reduce(input)
	second := Reduce(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Reduce not idempotent: %v then %v", first, second)
	}
}
