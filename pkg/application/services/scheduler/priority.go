package scheduler

import (
	"fmt"

	"github.com/vsinha/explan/pkg/domain/entities"
)

// Default priority prefixes, highest priority first
const (
	PrefixMYIFZ = "MYIFZ"
	PrefixMYOP  = "MYOP"
)

// DefaultTierName names the tier of molds no rule matches
const DefaultTierName = "other"

// Tier is the priority class of a mold. Lower ranks are scheduled first on a
// shared change date.
type Tier struct {
	Name string
	Rank int
}

// PriorityRule assigns a tier to the molds it matches
type PriorityRule struct {
	Name  string
	Rank  int
	Match func(entities.MoldCode) bool
}

// PrefixRule matches molds whose code starts with prefix
func PrefixRule(prefix string, rank int) PriorityRule {
	return PriorityRule{
		Name:  prefix,
		Rank:  rank,
		Match: func(m entities.MoldCode) bool { return m.HasPrefix(prefix) },
	}
}

// PrefixRules builds one rule per prefix, ranked in slice order
func PrefixRules(prefixes []string) []PriorityRule {
	rules := make([]PriorityRule, 0, len(prefixes))
	for i, p := range prefixes {
		rules = append(rules, PrefixRule(p, i))
	}
	return rules
}

// DefaultRules returns the plant's priority order: MYIFZ molds, then MYOP molds
func DefaultRules() []PriorityRule {
	return PrefixRules([]string{PrefixMYIFZ, PrefixMYOP})
}

// classifier evaluates rules in order; the first match wins
type classifier struct {
	rules       []PriorityRule
	defaultTier Tier
}

func newClassifier(rules []PriorityRule) (*classifier, error) {
	maxRank := -1
	for i, r := range rules {
		if r.Match == nil {
			return nil, fmt.Errorf("priority rule %d (%s) has no matcher", i, r.Name)
		}
		if r.Rank < 0 {
			return nil, fmt.Errorf("priority rule %s has negative rank %d", r.Name, r.Rank)
		}
		if r.Rank > maxRank {
			maxRank = r.Rank
		}
	}
	return &classifier{
		rules:       rules,
		defaultTier: Tier{Name: DefaultTierName, Rank: maxRank + 1},
	}, nil
}

func (c *classifier) classify(mold entities.MoldCode) Tier {
	for _, r := range c.rules {
		if r.Match(mold) {
			return Tier{Name: r.Name, Rank: r.Rank}
		}
	}
	return c.defaultTier
}
