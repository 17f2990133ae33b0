package schema

import (
	"encoding/json"
	"testing"
)

func TestModeValid(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{ModeCertain, true},
		{ModeRepeat, true},
		{ModeRandom, true},
		{ModeMultiple, true},
		{Mode("Bogus"), false},
	}
	for _, tt := range tests {
		if got := tt.mode.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestLibraryGetUnknown(t *testing.T) {
	lib := Library{}
	if _, err := lib.Get("missing"); err == nil {
		t.Errorf("expected error for missing title")
	}
}

func TestLibraryGetKnown(t *testing.T) {
	lib := Library{"a": Possibility{Width: 10, Height: 10}}
	p, err := lib.Get("a")
	if err != nil || p.Width != 10 {
		t.Errorf("Get() = %+v, %v", p, err)
	}
}

func TestValidateCatchesUnknownTitle(t *testing.T) {
	lib := Library{
		"row": Possibility{
			Width: 10, Height: 10,
			Contents: Contents{
				Mode: ModeCertain,
				Children: []PossibilityChild{
					{Title: "ghost", Type: TypeKnown},
				},
			},
		},
	}
	issues := lib.Validate()
	if len(issues) != 1 || issues[0].Schema != "row" {
		t.Errorf("Validate() = %+v, want one issue on row", issues)
	}
}

func TestValidateCatchesFinalMissingSource(t *testing.T) {
	lib := Library{
		"leaf": Possibility{
			Contents: Contents{
				Mode: ModeCertain,
				Children: []PossibilityChild{
					{Title: "x", Type: TypeFinal},
				},
			},
		},
	}
	issues := lib.Validate()
	if len(issues) != 1 {
		t.Fatalf("Validate() = %+v, want 1 issue", issues)
	}
	if issues[0].Message != "Final child missing source" {
		t.Errorf("got message %q", issues[0].Message)
	}
}

func TestValidateCatchesUnknownMode(t *testing.T) {
	lib := Library{"a": Possibility{Contents: Contents{Mode: "Bogus"}}}
	issues := lib.Validate()
	if len(issues) != 1 {
		t.Fatalf("Validate() = %+v, want 1 issue", issues)
	}
}

func TestValidateClean(t *testing.T) {
	lib := Library{
		"a": Possibility{Contents: Contents{Mode: ModeCertain, Children: []PossibilityChild{
			{Title: "b", Type: TypeKnown},
		}}},
		"b": Possibility{Contents: Contents{Mode: ModeCertain}},
	}
	if issues := lib.Validate(); len(issues) != 0 {
		t.Errorf("Validate() = %+v, want no issues", issues)
	}
}

func TestUnmarshalPossibility(t *testing.T) {
	raw := `{
		"width": 30, "height": 10,
		"contents": {
			"mode": "Certain",
			"direction": "right",
			"spacing": 2,
			"children": [
				{"title": "a", "type": "Known"},
				{"title": "b", "type": "Known", "percent": 50}
			]
		}
	}`
	var p Possibility
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.Contents.Mode != ModeCertain || len(p.Contents.Children) != 2 {
		t.Errorf("got %+v", p.Contents)
	}
	if p.Contents.Direction == nil || *p.Contents.Direction != "right" {
		t.Errorf("direction = %+v", p.Contents.Direction)
	}
}

func TestArgumentsUnmarshalFixed(t *testing.T) {
	var a Arguments
	if err := json.Unmarshal([]byte(`{"color":"red"}`), &a); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if a.Weighted || a.Fixed["color"] != "red" {
		t.Errorf("got %+v", a)
	}
}

func TestArgumentsUnmarshalWeighted(t *testing.T) {
	raw := `[{"values":{"color":"red"},"percent":50},{"values":{"color":"blue"},"percent":50}]`
	var a Arguments
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !a.Weighted || len(a.Options) != 2 {
		t.Errorf("got %+v", a)
	}
}
