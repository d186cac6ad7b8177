package mpcase

// BusType is the canonical textual bus type of the DC model.
type BusType string

const (
	BusPQ    BusType = "pq"
	BusPV    BusType = "pv"
	BusSlack BusType = "slack"
)

// Bus is the canonical DC bus record. Pd and Pg are in MW.
type Bus struct {
	ID   int
	Type BusType
	Pd   float64
	Pg   float64
}

// Branch is the canonical DC branch record. X is the series reactance in pu
// and must be nonzero before any matrix is built.
type Branch struct {
	From int
	To   int
	X    float64
}

// Case is a network case as submitted by a caller. Bus, Gen and Branch keep
// the raw element shapes (named records or fixed-column rows); the DC
// normalizer and the AC table coercion turn them into typed data.
type Case struct {
	Version string
	BaseMVA float64
	Bus     []any
	Gen     []any
	Branch  []any
}

// FromMap assembles a Case from a generic JSON mapping. baseMVA defaults to
// 100 and version to "2"; list fields stay raw.
func FromMap(m map[string]any) (*Case, error) {
	c := &Case{Version: "2", BaseMVA: 100.0}

	if v, ok := m["version"]; ok {
		if s, ok := v.(string); ok {
			c.Version = s
		}
	}
	if v, ok := m["baseMVA"]; ok {
		f, ok := num(v)
		if !ok {
			return nil, Invalidf("case baseMVA must be a number")
		}
		c.BaseMVA = f
	}

	for _, fld := range []struct {
		name string
		dst  *[]any
	}{
		{"bus", &c.Bus},
		{"gen", &c.Gen},
		{"branch", &c.Branch},
	} {
		v, ok := m[fld.name]
		if !ok || v == nil {
			continue
		}
		list, ok := asList(v)
		if !ok {
			return nil, Invalidf("case %s must be a list", fld.name)
		}
		*fld.dst = list
	}

	return c, nil
}
