package building

import "testing"

func TestClassify(t *testing.T) {
	cases := map[string]Class{
		"residential": ClassResidential,
		"Apartments":  ClassResidential,
		"house":       ClassResidential,
		"commercial":  ClassCommercial,
		"RETAIL":      ClassCommercial,
		"office":      ClassCommercial,
		"industrial":  ClassIndustrial,
		"warehouse":   ClassIndustrial,
		"":            ClassOther,
		"church":      ClassOther,
		"yes":         ClassOther,
	}
	for tag, want := range cases {
		if got := Classify(tag); got != want {
			t.Errorf("Classify(%q) = %v, want %v", tag, got, want)
		}
	}
}

func TestClassString(t *testing.T) {
	if ClassCommercial.String() != "commercial" || ClassOther.String() != "other" {
		t.Error("unexpected class names")
	}
}

func TestParamsFallback(t *testing.T) {
	p := &Params{
		Windows: map[string]WindowParams{"other": {Spacing: 9}},
		Details: map[string]DetailParams{"other": {Parapet: 0.5}},
	}
	if p.WindowsFor(ClassCommercial).Spacing != 9 {
		t.Error("expected fallback to the other table")
	}
	if p.DetailsFor(ClassIndustrial).Parapet != 0.5 {
		t.Error("expected fallback to the other table")
	}
}

func TestDefaultParamsCoverAllClasses(t *testing.T) {
	p := DefaultParams()
	for _, c := range []Class{ClassOther, ClassResidential, ClassCommercial, ClassIndustrial} {
		w := p.WindowsFor(c)
		if w.Spacing <= 0 || w.Width <= 0 || w.Width > w.Spacing {
			t.Errorf("class %v: implausible window table %+v", c, w)
		}
	}
}
