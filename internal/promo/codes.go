package promo

import "strings"

// CodeMatchType controls how a cart's discount code is compared to a whitelist.
type CodeMatchType int

const (
	CodeMatchExact CodeMatchType = iota + 1
	CodeMatchPartial
)

// ParseCodeMatchType resolves "exact" or "partial".
func ParseCodeMatchType(value string) (CodeMatchType, error) {
	switch normalize(value) {
	case "exact":
		return CodeMatchExact, nil
	case "partial":
		return CodeMatchPartial, nil
	default:
		return 0, invalidConfig("unknown discount code match type %q", value)
	}
}

// DiscountCodeSelector matches discount codes that may be combined with a campaign.
type DiscountCodeSelector struct {
	matchType CodeMatchType
	codes     []string
}

// NewDiscountCodeSelector normalizes codes to upper case. An empty list matches nothing.
func NewDiscountCodeSelector(matchType CodeMatchType, codes []string) (*DiscountCodeSelector, error) {
	if matchType != CodeMatchExact && matchType != CodeMatchPartial {
		return nil, invalidConfig("unknown discount code match type %d", int(matchType))
	}
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		if c := strings.ToUpper(strings.TrimSpace(code)); c != "" {
			normalized = append(normalized, c)
		}
	}
	return &DiscountCodeSelector{matchType: matchType, codes: normalized}, nil
}

// Match reports whether code is whitelisted. Partial matching checks that the
// code contains one of the configured parts.
func (s *DiscountCodeSelector) Match(code string) bool {
	if s == nil {
		return false
	}
	candidate := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range s.codes {
		switch s.matchType {
		case CodeMatchExact:
			if candidate == c {
				return true
			}
		case CodeMatchPartial:
			if strings.Contains(candidate, c) {
				return true
			}
		}
	}
	return false
}
