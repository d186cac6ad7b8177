package mpcase

import (
	"strings"

	"powerflow/internal/consts"
)

// busTypeFromCode maps the numeric MATPOWER type code to the canonical
// textual type. Unmapped codes fall back to pq.
func busTypeFromCode(code int) BusType {
	switch code {
	case consts.TypePQ:
		return BusPQ
	case consts.TypePV:
		return BusPV
	case consts.TypeRef:
		return BusSlack
	default:
		return BusPQ
	}
}

// busTypeFromValue resolves a named-record type field that may be a textual
// type or a numeric code. slack/ref/swing all mean the reference bus.
func busTypeFromValue(v any) BusType {
	if v == nil {
		return BusPQ
	}
	if f, ok := num(v); ok {
		return busTypeFromCode(int(f))
	}
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "pv":
			return BusPV
		case "slack", "ref", "swing":
			return BusSlack
		}
	}
	return BusPQ
}

// NormalizeBuses turns a heterogeneous bus list (named records or
// fixed-column rows) into canonical Bus records with unique ids.
func NormalizeBuses(raw []any) ([]Bus, error) {
	buses := make([]Bus, 0, len(raw))
	seen := make(map[int]bool, len(raw))

	for i, elem := range raw {
		var b Bus

		switch e := elem.(type) {
		case map[string]any:
			idVal, ok := e["id"]
			if !ok {
				idVal, ok = e["bus_i"]
			}
			if !ok || idVal == nil {
				return nil, Invalidf("DC: bus[%d] missing id/bus_i", i)
			}
			idF, ok := num(idVal)
			if !ok {
				return nil, Invalidf("DC: bus[%d] id must be a number", i)
			}
			b.ID = int(idF)
			b.Type = busTypeFromValue(e["type"])
			if v, ok := e["Pd"]; ok {
				if f, ok := num(v); ok {
					b.Pd = f
				}
			}
			if v, ok := e["Pg"]; ok {
				if f, ok := num(v); ok {
					b.Pg = f
				}
			}

		default:
			row, ok := asRow(elem)
			if !ok {
				return nil, Invalidf("DC: bus[%d] must be an object or a MATPOWER row", i)
			}
			if len(row) < 3 {
				return nil, Invalidf("DC: bus[%d] MATPOWER row too short, need at least 3 cols", i)
			}
			b.ID = int(row[consts.BusI])
			b.Type = busTypeFromCode(int(row[consts.BusType]))
			b.Pd = row[consts.BusPd]
			// The bus table carries no generation column; Pg stays 0 and has
			// to be summed from a gen table upstream.
		}

		if seen[b.ID] {
			return nil, Invalidf("DC: duplicated bus id=%d", b.ID)
		}
		seen[b.ID] = true
		buses = append(buses, b)
	}

	return buses, nil
}

// firstKey resolves the first present key of a named record, so the two
// endpoint fields can mix naming styles independently.
func firstKey(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// NormalizeBranches turns a heterogeneous branch list into canonical Branch
// records. Endpoint existence is checked later against the bus set.
func NormalizeBranches(raw []any) ([]Branch, error) {
	out := make([]Branch, 0, len(raw))

	for i, elem := range raw {
		switch e := elem.(type) {
		case map[string]any:
			fVal, fOK := firstKey(e, "f", "fbus", "from")
			tVal, tOK := firstKey(e, "t", "tbus", "to")
			if !fOK || !tOK || fVal == nil || tVal == nil {
				return nil, Invalidf("DC: branch[%d] missing endpoints", i)
			}
			fF, ok1 := num(fVal)
			tF, ok2 := num(tVal)
			if !ok1 || !ok2 {
				return nil, Invalidf("DC: branch[%d] endpoints must be numbers", i)
			}
			xVal, ok := e["x"]
			if !ok {
				return nil, Invalidf("DC: branch[%d] missing x", i)
			}
			x, ok := num(xVal)
			if !ok {
				return nil, Invalidf("DC: branch[%d] x must be a number", i)
			}
			out = append(out, Branch{From: int(fF), To: int(tF), X: x})

		default:
			row, ok := asRow(elem)
			if !ok {
				return nil, Invalidf("DC: branch[%d] must be an object or a MATPOWER row", i)
			}
			if len(row) < 4 {
				return nil, Invalidf("DC: branch[%d] MATPOWER row too short, need at least 4 cols", i)
			}
			out = append(out, Branch{
				From: int(row[consts.BrF]),
				To:   int(row[consts.BrT]),
				X:    row[consts.BrX],
			})
		}
	}

	return out, nil
}

// SlackIndex picks the reference bus: the first bus typed slack, or index 0
// when none qualifies.
func SlackIndex(buses []Bus) int {
	for i, b := range buses {
		if b.Type == BusSlack {
			return i
		}
	}
	return 0
}
