package building

// WindowParams controls opening placement along a wall for one class.
type WindowParams struct {
	Spacing      float64 `yaml:"spacing" mapstructure:"spacing"`             // center-to-center, meters
	Width        float64 `yaml:"width" mapstructure:"width"`                 // opening width
	Height       float64 `yaml:"height" mapstructure:"height"`               // opening height
	SillHeight   float64 `yaml:"sill_height" mapstructure:"sill_height"`     // above the floor line
	CornerMargin float64 `yaml:"corner_margin" mapstructure:"corner_margin"` // reserved at segment ends
	LitChance    float64 `yaml:"lit_chance" mapstructure:"lit_chance"`       // window occupancy probability
}

// DetailParams holds per-class probabilities for optional details.
type DetailParams struct {
	Shutters    float64 `yaml:"shutters" mapstructure:"shutters"`
	FlowerBoxes float64 `yaml:"flower_boxes" mapstructure:"flower_boxes"`
	Balcony     float64 `yaml:"balcony" mapstructure:"balcony"`
	FireEscape  float64 `yaml:"fire_escape" mapstructure:"fire_escape"`
	ACUnits     float64 `yaml:"ac_units" mapstructure:"ac_units"`
	Chimney     float64 `yaml:"chimney" mapstructure:"chimney"`
	Parapet     float64 `yaml:"parapet" mapstructure:"parapet"`
	Canopy      float64 `yaml:"canopy" mapstructure:"canopy"`
}

// Params bundles the per-class generation tables. The zero value is not
// usable; start from DefaultParams and override from configuration.
type Params struct {
	Windows map[string]WindowParams `yaml:"windows" mapstructure:"windows"`
	Details map[string]DetailParams `yaml:"details" mapstructure:"details"`
}

// DefaultParams returns the built-in generation tables.
func DefaultParams() *Params {
	return &Params{
		Windows: map[string]WindowParams{
			"commercial":  {Spacing: 2.4, Width: 1.6, Height: 1.8, SillHeight: 0.9, CornerMargin: 1.0, LitChance: 0.55},
			"residential": {Spacing: 2.8, Width: 1.2, Height: 1.4, SillHeight: 1.0, CornerMargin: 1.2, LitChance: 0.35},
			"industrial":  {Spacing: 4.0, Width: 2.0, Height: 1.0, SillHeight: 1.8, CornerMargin: 1.5, LitChance: 0.15},
			"other":       {Spacing: 3.0, Width: 1.4, Height: 1.5, SillHeight: 1.0, CornerMargin: 1.2, LitChance: 0.30},
		},
		Details: map[string]DetailParams{
			"commercial":  {ACUnits: 0.75, Parapet: 0.80, Canopy: 0.60},
			"residential": {Shutters: 0.40, FlowerBoxes: 0.25, Balcony: 0.35, Chimney: 0.50, Parapet: 0.20, Canopy: 0.30},
			"industrial":  {FireEscape: 0.60, ACUnits: 0.50, Chimney: 0.70, Parapet: 0.55},
			"other":       {ACUnits: 0.30, Parapet: 0.35, Canopy: 0.20},
		},
	}
}

// WindowsFor returns the window table for a class, falling back to "other"
// when a configured table omits the class.
func (p *Params) WindowsFor(c Class) WindowParams {
	if w, ok := p.Windows[c.String()]; ok {
		return w
	}
	return p.Windows["other"]
}

// DetailsFor returns the detail probability table for a class.
func (p *Params) DetailsFor(c Class) DetailParams {
	if d, ok := p.Details[c.String()]; ok {
		return d
	}
	return p.Details["other"]
}
