package programme

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/podiumhq/podium/core/model"
)

// GroupInfo is the parsed grouping of one work: the parent-work key the
// bundle is built on, the movement label shown after the separator, and
// the movement order (0 when unknown).
type GroupInfo struct {
	Key           string
	MovementLabel string
	MovementOrder int
}

// GroupParser extracts grouping information from a work. Implementations
// differ on whether an explicit group hint is trusted or the title must be
// inspected.
type GroupParser interface {
	Parse(w model.Work) GroupInfo
}

// ParserFor picks the parser for a work: hinted works use the hint as the
// group key, everything else is inferred from the title.
func ParserFor(w model.Work) GroupParser {
	if strings.TrimSpace(w.GroupHint) != "" {
		return HintParser{}
	}
	return TitleParser{}
}

// ParseGroup is the convenience entry point used by the bundle builder.
func ParseGroup(w model.Work) GroupInfo {
	return ParserFor(w).Parse(w)
}

var (
	separatorRe  = regexp.MustCompile(`\s*[:\-–]\s*`)
	romanRe      = regexp.MustCompile(`(?i)^(I{1,3}|IV|V|VI{0,3}|IX|X|XI{1,3}|XIV|XV)\b[.\-–:]?\s*(.*)$`)
	leadingIntRe = regexp.MustCompile(`^(\d{1,2})\b[.\-–:]?\s*(.*)$`)
)

var romanValues = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
	"XI": 11, "XII": 12, "XIII": 13, "XIV": 14, "XV": 15,
}

// HintParser trusts the work's explicit group hint. The movement label is
// whatever follows the hint in the title, and an explicit movement order
// on the work wins over anything parsed.
type HintParser struct{}

func (HintParser) Parse(w model.Work) GroupInfo {
	title := strings.TrimSpace(w.Title)
	group := strings.TrimSpace(w.GroupHint)

	var tail string
	if strings.HasPrefix(strings.ToLower(title), strings.ToLower(group)) {
		tail = strings.TrimSpace(title[len(group):])
		tail = strings.TrimLeft(tail, ":-– .")
		tail = strings.TrimSpace(tail)
	}

	info := parseMovement(tail)
	info.Key = group
	if w.MovementOrder > 0 {
		info.MovementOrder = w.MovementOrder
	}
	return info
}

// TitleParser infers the group by splitting the title on its first
// separator; the remainder is inspected for a Roman numeral or leading
// integer movement marker.
type TitleParser struct{}

func (TitleParser) Parse(w model.Work) GroupInfo {
	title := strings.TrimSpace(w.Title)

	var group, tail string
	if loc := separatorRe.FindStringIndex(title); loc != nil && loc[0] > 0 {
		group = strings.TrimSpace(title[:loc[0]])
		tail = strings.TrimSpace(title[loc[1]:])
	} else {
		group = title
	}

	info := parseMovement(tail)
	if group == "" {
		group = title
	}
	info.Key = group
	if w.MovementOrder > 0 {
		info.MovementOrder = w.MovementOrder
	}
	return info
}

// parseMovement reads a movement label and order from the tail of a title,
// e.g. "II. Andante" or "3 - Finale".
func parseMovement(tail string) GroupInfo {
	if tail == "" {
		return GroupInfo{}
	}
	if m := romanRe.FindStringSubmatch(tail); m != nil {
		return GroupInfo{
			MovementLabel: tail,
			MovementOrder: romanValues[strings.ToUpper(m[1])],
		}
	}
	if m := leadingIntRe.FindStringSubmatch(tail); m != nil {
		order, _ := strconv.Atoi(m[1])
		return GroupInfo{MovementLabel: tail, MovementOrder: order}
	}
	return GroupInfo{MovementLabel: tail}
}
