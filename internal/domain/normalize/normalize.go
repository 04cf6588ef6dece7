// Package normalize turns raw uploaded rows into typed rows using a column
// mapping. Cell values come straight from spreadsheets, so cleaning is
// deliberately forgiving: invisible characters, trailing units, and
// European decimal commas are all handled here so later stages never see
// them.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/fieldhouse/combine/internal/domain/mapping"
	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/internal/domain/schema"
)

// Row is one upload line after mapping and cleaning. Index is the 1-based
// data row number (header excluded) and survives into rejection reports.
// Warnings note recoverable problems; Errors mark the row invalid, and
// identity resolution rejects any row carrying one.
type Row struct {
	Index      int
	First      string
	Last       string
	Number     *int
	AgeGroup   string
	ExternalID string
	TeamName   string
	Position   string
	Scores     map[string]float64
	Warnings   []string
	Errors     []string
}

// DisplayName joins the name parts the way rosters print them.
func (r Row) DisplayName() string {
	if r.Last == "" {
		return r.First
	}
	return r.First + " " + r.Last
}

// Rows normalizes every raw row under the given header mapping. Unparseable
// or out-of-range score cells are dropped with a warning rather than failing
// the row; a malformed jersey number marks the row invalid instead, because
// the number participates in identity and importing under the wrong key is
// worse than skipping. Rows are never dropped here, identity resolution
// decides rejection.
func Rows(raw []model.RawRow, fieldMapping map[string]string, drills []schema.DrillDefinition) []Row {
	byKey := make(map[string]schema.DrillDefinition, len(drills))
	for _, d := range schema.ActiveDrills(drills) {
		byKey[d.Key] = d
	}

	out := make([]Row, 0, len(raw))
	for i, rr := range raw {
		out = append(out, one(i+1, rr, fieldMapping, byKey))
	}
	return out
}

func one(index int, raw model.RawRow, fieldMapping map[string]string, drills map[string]schema.DrillDefinition) Row {
	row := Row{Index: index, Scores: make(map[string]float64)}

	var fullName string
	for header, value := range raw {
		target, ok := fieldMapping[header]
		if !ok {
			continue
		}
		v := CleanValue(value)
		if v == "" {
			continue
		}

		switch target {
		case mapping.FieldFirst:
			row.First = v
		case mapping.FieldLast:
			row.Last = v
		case mapping.FieldName:
			fullName = v
		case mapping.FieldNumber:
			n, err := ParseJerseyNumber(v)
			if err != nil {
				row.Errors = append(row.Errors, fmt.Sprintf("invalid number %q", value))
				continue
			}
			row.Number = &n
		case mapping.FieldAgeGroup:
			row.AgeGroup = v
		case mapping.FieldExternalID:
			row.ExternalID = v
		case mapping.FieldTeamName:
			row.TeamName = v
		case mapping.FieldPosition:
			row.Position = v
		default:
			d, ok := drills[target]
			if !ok {
				continue
			}
			f, err := ParseNumeric(v)
			if err != nil {
				row.Warnings = append(row.Warnings, fmt.Sprintf("row %d: bad value %q for %s", index, value, target))
				continue
			}
			if d.MinValue != nil && f < *d.MinValue || d.MaxValue != nil && f > *d.MaxValue {
				row.Warnings = append(row.Warnings, fmt.Sprintf("row %d: %s value %v outside range", index, target, f))
				continue
			}
			row.Scores[target] = f
		}
	}

	// A combined name column only fills what dedicated columns left empty.
	if fullName != "" && row.First == "" && row.Last == "" {
		row.First, row.Last = SplitName(fullName)
	}

	return row
}

// SplitName splits a combined name on the first whitespace run: everything
// before is the first name, everything after the last. A single token is a
// first name with no last name.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	i := strings.IndexFunc(name, unicode.IsSpace)
	if i < 0 {
		return name, ""
	}
	first = name[:i]
	last = strings.TrimLeftFunc(name[i:], unicode.IsSpace)
	return first, last
}

// CleanValue trims a raw cell and strips invisible characters that
// spreadsheet exports sneak in: zero-width spaces, BOMs, directional marks,
// non-breaking spaces, and control runes.
func CleanValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\u00a0':
			b.WriteByte(' ')
		case r == '\ufeff', r == '\u200b', r == '\u200c', r == '\u200d',
			r == '\u200e', r == '\u200f', r == '\u2060':
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ParseNumeric coerces a cleaned cell into a float. It tolerates the mess
// measurement columns actually contain: trailing unit text ("4.52s",
// "32 in", "85%", `28"`), European decimal commas ("4,52"), and doubled
// decimal points from fat-fingered entry ("4..52").
func ParseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyValue
	}

	// Cut trailing unit text: letters, %, quotes, and the space before them.
	end := len(s)
	for end > 0 {
		r := rune(s[end-1])
		if r >= '0' && r <= '9' || r == '.' || r == ',' {
			break
		}
		end--
	}
	s = strings.TrimSpace(s[:end])
	if s == "" {
		return 0, fmt.Errorf("%w: no digits", ErrNotNumeric)
	}

	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		// "1,234.5" style thousands separators.
		s = strings.ReplaceAll(s, ",", "")
	}
	s = strings.ReplaceAll(s, "..", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return f, nil
}

// ParseJerseyNumber coerces a jersey number cell to an int. Spreadsheets
// routinely render numbers as "12.0"; any value that is an exact integer
// after numeric parsing is accepted.
func ParseJerseyNumber(s string) (int, error) {
	f, err := ParseNumeric(s)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return n, nil
}
