package property

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Mutombe/propdesk/internal/domain"
)

// ParseUnitDefinition expands a unit-definition string into the unit numbers
// it implies. Segments are separated by ";"; each segment is either a bare
// numeric range ("1-17") or a prefixed range ("A1-A20"). A prefixed range
// requires the same prefix on both ends. The expansion order follows the
// definition text.
//
// Parsing is used client-side to derive defined_unit_count and to validate a
// definition before submission; the preview/generate endpoints remain the
// authority on which units actually exist.
func ParseUnitDefinition(def string) ([]string, error) {
	var units []string
	seen := make(map[string]bool)

	for _, segment := range strings.Split(def, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		expanded, err := expandSegment(segment)
		if err != nil {
			return nil, err
		}
		for _, u := range expanded {
			if seen[u] {
				continue
			}
			seen[u] = true
			units = append(units, u)
		}
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("%w: unit definition %q defines no units", domain.ErrValidation, def)
	}
	return units, nil
}

// DefinedUnitCount returns the number of units a definition implies, or 0 when
// the definition is empty or invalid.
func DefinedUnitCount(def string) int {
	if strings.TrimSpace(def) == "" {
		return 0
	}
	units, err := ParseUnitDefinition(def)
	if err != nil {
		return 0
	}
	return len(units)
}

// expandSegment expands a single "start-end" range, with an optional shared
// alphabetic prefix. A segment without "-" is a single unit number.
func expandSegment(segment string) ([]string, error) {
	start, end, found := strings.Cut(segment, "-")
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if !found {
		return []string{start}, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: malformed range %q", domain.ErrValidation, segment)
	}

	startPrefix, startNum, err := splitPrefix(start)
	if err != nil {
		return nil, fmt.Errorf("%w: range %q: %v", domain.ErrValidation, segment, err)
	}
	endPrefix, endNum, err := splitPrefix(end)
	if err != nil {
		return nil, fmt.Errorf("%w: range %q: %v", domain.ErrValidation, segment, err)
	}
	if startPrefix != endPrefix {
		return nil, fmt.Errorf("%w: range %q mixes prefixes %q and %q", domain.ErrValidation, segment, startPrefix, endPrefix)
	}
	if endNum < startNum {
		return nil, fmt.Errorf("%w: range %q runs backwards", domain.ErrValidation, segment)
	}

	units := make([]string, 0, endNum-startNum+1)
	for n := startNum; n <= endNum; n++ {
		units = append(units, fmt.Sprintf("%s%d", startPrefix, n))
	}
	return units, nil
}

// splitPrefix splits "A12" into ("A", 12) and "12" into ("", 12).
func splitPrefix(s string) (prefix string, num int, err error) {
	i := 0
	for i < len(s) && !unicode.IsDigit(rune(s[i])) {
		i++
	}
	if i == len(s) {
		return "", 0, fmt.Errorf("no numeric part in %q", s)
	}
	num, err = strconv.Atoi(s[i:])
	if err != nil {
		return "", 0, fmt.Errorf("bad numeric part in %q", s)
	}
	return s[:i], num, nil
}
