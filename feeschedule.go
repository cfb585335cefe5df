package fundtrade

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FeeSegment is one tier of a redemption fee table: the fee rate applied
// when the holding period falls in [MinDays, MaxDays). MaxDays < 0 means
// the tier is unbounded.
type FeeSegment struct {
	MinDays int
	MaxDays int
	Rate    Percent
}

// FeeSchedule answers the redemption fee rate for a holding period, from an
// ordered list of day-range tiers.
type FeeSchedule struct {
	segments []FeeSegment
	logger   *zap.Logger
}

// NewFeeSchedule builds a schedule from already-normalized segments.
func NewFeeSchedule(segments []FeeSegment, logger *zap.Logger) *FeeSchedule {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeSchedule{segments: segments, logger: logger}
}

// NewFlatFeeSchedule builds a single unbounded tier, mostly useful for
// instruments with one flat redemption rate (possibly zero).
func NewFlatFeeSchedule(rate Percent, logger *zap.Logger) *FeeSchedule {
	return NewFeeSchedule([]FeeSegment{{MinDays: 0, MaxDays: -1, Rate: rate}}, logger)
}

// ParseFeeSchedule converts the provider's textual fee table into a
// schedule. The input is the flattened sequence of (holding-span, fee) text
// pairs as scraped, e.g.
//
//	["小于7天", "1.50%", "大于等于7天，小于365天", "0.75%", "大于等于365天", "0.00%"]
//
// Spans use 天 (days), 月 (months of 30 days) or 年 (years of 365 days).
// Touching closed intervals are snapped contiguous; any other gap between
// adjacent tiers is a data-quality anomaly: it is logged and kept as parsed,
// never fatal.
func ParseFeeSchedule(raw []string, logger *zap.Logger) (*FeeSchedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(raw)%2 != 0 {
		return nil, &ParserFailure{Msg: fmt.Sprintf("fee table has %d cells, want span/fee pairs", len(raw))}
	}

	var segments []FeeSegment
	for i := 0; i+1 < len(raw); i += 2 {
		bounds, err := parseFeeSpan(raw[i])
		if err != nil {
			return nil, err
		}
		rate, err := parseFeePercent(raw[i+1])
		if err != nil {
			return nil, err
		}

		seg := FeeSegment{Rate: rate}
		switch len(bounds) {
		case 1:
			if len(segments) == 0 {
				// A lone bound on the first tier is its upper end
				// ("小于7天"), later tiers keep it as an open lower end.
				seg.MinDays, seg.MaxDays = 0, bounds[0]
			} else {
				seg.MinDays, seg.MaxDays = bounds[0], -1
			}
		case 2:
			seg.MinDays, seg.MaxDays = bounds[0], bounds[1]
			if len(segments) == 0 {
				seg.MinDays = 0
			}
		default:
			return nil, &ParserFailure{Msg: fmt.Sprintf("fee span %q has %d bounds", raw[i], len(bounds))}
		}
		segments = append(segments, seg)
	}

	// Some providers write both ends of adjacent tiers as closed intervals.
	for i := 0; i < len(segments)-1; i++ {
		switch {
		case segments[i].MaxDays == segments[i+1].MinDays:
			// contiguous already
		case segments[i].MaxDays == segments[i+1].MinDays-1:
			segments[i].MaxDays = segments[i+1].MinDays
		default:
			logger.Warn("fee schedule tiers are not contiguous, keeping as parsed",
				zap.Int("tier", i),
				zap.Int("max_days", segments[i].MaxDays),
				zap.Int("next_min_days", segments[i+1].MinDays))
		}
	}

	return &FeeSchedule{segments: segments, logger: logger}, nil
}

// parseFeeSpan extracts the day bounds of one holding-span cell.
func parseFeeSpan(span string) ([]int, error) {
	cleaned := strings.NewReplacer("小于", "", "大于", "", "等于", "", "个", "", " ", "").Replace(span)
	var bounds []int
	for _, token := range strings.FieldsFunc(cleaned, func(r rune) bool { return r == '，' || r == ',' }) {
		runes := []rune(token)
		if len(runes) < 2 {
			return nil, &ParserFailure{Msg: fmt.Sprintf("fee span token %q too short", token)}
		}
		n, err := strconv.Atoi(string(runes[:len(runes)-1]))
		if err != nil {
			return nil, &ParserFailure{Msg: fmt.Sprintf("fee span token %q: %v", token, err)}
		}
		switch runes[len(runes)-1] {
		case '天':
			// days as is
		case '月':
			n *= 30
		case '年':
			n *= 365
		default:
			return nil, &ParserFailure{Msg: fmt.Sprintf("fee span token %q has unknown unit", token)}
		}
		bounds = append(bounds, n)
	}
	if len(bounds) == 0 {
		return nil, &ParserFailure{Msg: fmt.Sprintf("fee span %q has no bounds", span)}
	}
	return bounds, nil
}

func parseFeePercent(fee string) (Percent, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(fee), "%")), 64)
	if err != nil {
		return 0, &ParserFailure{Msg: fmt.Sprintf("fee rate %q: %v", fee, err)}
	}
	return Percent(v), nil
}

// Segments returns the parsed tiers, in order.
func (f *FeeSchedule) Segments() []FeeSegment {
	out := make([]FeeSegment, len(f.segments))
	copy(out, f.segments)
	return out
}

// Rate returns the redemption fee rate for a holding period of the given
// number of natural days. A lookup that matches no tier returns 0: the
// original data source occasionally produces unparseable tables and a
// missed tier must not sink the whole replay, but it is logged as an
// anomaly because it can also hide a parsing bug.
func (f *FeeSchedule) Rate(days int) Percent {
	for _, seg := range f.segments {
		if days >= seg.MinDays && (seg.MaxDays < 0 || days < seg.MaxDays) {
			return seg.Rate
		}
	}
	f.logger.Warn("holding period matches no fee tier, defaulting to 0%",
		zap.Int("days", days),
		zap.Int("tiers", len(f.segments)))
	return 0
}
