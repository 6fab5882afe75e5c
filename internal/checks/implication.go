package checks

import (
	"fmt"
	"strings"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taxonomy"
)

// codeScope names the classification column an implication rule reads.
// The top two levels are checked on their raw columns because several
// codes mean different things at deeper levels of the hierarchy.
type codeScope int

const (
	scopeEffective codeScope = iota // most granular code of each row
	scopeLevel1                     // raw first-level column
	scopeLevel2                     // raw second-level column
)

// ImplicationRule ties trigger codes to the codes their presence implies
// within one fund's monthly rows. Every rule also runs in reverse: required
// codes present without any trigger are flagged too. Rules are evaluated
// per fund and never depend on another rule's outcome.
type ImplicationRule struct {
	ID       string
	Name     string
	Scope    codeScope
	Triggers []string
	Required []string

	// RequireAll makes the forward direction demand every required code
	// rather than at least one.
	RequireAll bool
}

var implicationRules = []ImplicationRule{
	{ID: "3a", Name: "FX exposure", Scope: scopeLevel2, Triggers: []string{"0102", "0302", "0502"}, Required: []string{"06"}},
	{ID: "3b", Name: "Bond exposure", Scope: scopeLevel1, Triggers: []string{"03"}, Required: []string{"07", "08"}, RequireAll: true},
	{ID: "3c", Name: "Government bonds, index-linked", Scope: scopeEffective, Triggers: []string{"03010101"}, Required: []string{"080202"}},
	{ID: "3d", Name: "Government bonds, shekel", Scope: scopeEffective, Triggers: []string{"03010102"}, Required: []string{"080201"}},
	{ID: "3e", Name: "Government bonds, FX-linked", Scope: scopeEffective, Triggers: []string{"03010103"}, Required: []string{"080203"}},
	{ID: "3f", Name: "Corporate bonds, shekel", Scope: scopeEffective, Triggers: []string{"03010202", "03010203"}, Required: []string{"080204"}},
	{ID: "3g", Name: "Corporate bonds, index-linked", Scope: scopeEffective, Triggers: []string{"03010201"}, Required: []string{"080205"}},
	{ID: "3h", Name: "Corporate bonds, FX-linked", Scope: scopeEffective, Triggers: []string{"03010204"}, Required: []string{"080206"}},
}

// ImplicationRules returns a copy of the rule table in evaluation order.
func ImplicationRules() []ImplicationRule {
	rules := make([]ImplicationRule, len(implicationRules))
	copy(rules, implicationRules)
	return rules
}

// ImplicationGroup is one rule's verdict across all funds.
type ImplicationGroup struct {
	Rule       ImplicationRule
	Exceptions []models.Exception
}

// fundCodes holds one fund's classification codes per scope. Top-level
// codes are stored both as written and zero-padded to two digits, so "3"
// and "03" are the same code.
type fundCodes struct {
	effective map[string]bool
	level1    map[string]bool
	level2    map[string]bool
}

func collectCodes(rows []models.DisclosureRecord) fundCodes {
	c := fundCodes{
		effective: make(map[string]bool),
		level1:    make(map[string]bool),
		level2:    make(map[string]bool),
	}
	for _, rec := range rows {
		if code := rec.EffectiveCode(); code != "" {
			c.effective[code] = true
		}
		if v := strings.TrimSpace(rec.Level1); v != "" {
			c.level1[v] = true
			if len(v) == 1 {
				c.level1["0"+v] = true
			}
		}
		if v := strings.TrimSpace(rec.Level2); v != "" {
			c.level2[v] = true
		}
	}
	return c
}

// has reports whether a code is present in the given scope. Second-level
// membership is tested by prefix so that "06" covers 0601, 0603 and the
// like.
func (c fundCodes) has(scope codeScope, code string) bool {
	switch scope {
	case scopeLevel1:
		return c.level1[code]
	case scopeLevel2:
		if c.level2[code] {
			return true
		}
		for v := range c.level2 {
			if strings.HasPrefix(v, code) {
				return true
			}
		}
		return false
	default:
		return c.effective[code]
	}
}

// Implications evaluates the whole rule table against every in-scope fund.
// The result always contains one group per rule, in table order, so report
// sections stay stable even when a rule found nothing.
func Implications(records []models.DisclosureRecord, inScope map[int64]bool, resolver *taxonomy.Resolver) []ImplicationGroup {
	order, groups := groupByFund(records, inScope)

	results := make([]ImplicationGroup, len(implicationRules))
	for i, rule := range implicationRules {
		results[i] = ImplicationGroup{Rule: rule}
	}

	for _, fundID := range order {
		rows := groups[fundID]
		codes := collectCodes(rows)

		var name string
		for _, rec := range rows {
			if rec.FundName != "" {
				name = rec.FundName
			}
		}

		for i, rule := range implicationRules {
			if ex, ok := evalImplication(rule, codes, fundID, name, resolver); ok {
				results[i].Exceptions = append(results[i].Exceptions, ex)
			}
		}
	}

	for i := range results {
		results[i].Exceptions = numberSeq(results[i].Exceptions)
	}
	return results
}

func evalImplication(rule ImplicationRule, codes fundCodes, fundID int64, fundName string, resolver *taxonomy.Resolver) (models.Exception, bool) {
	var foundTriggers []string
	for _, t := range rule.Triggers {
		if codes.has(rule.Scope, t) {
			foundTriggers = append(foundTriggers, t)
		}
	}

	var foundRequired, missingRequired []string
	for _, req := range rule.Required {
		if codes.has(rule.Scope, req) {
			foundRequired = append(foundRequired, req)
		} else {
			missingRequired = append(missingRequired, req)
		}
	}

	requiredMet := len(foundRequired) > 0
	if rule.RequireAll {
		requiredMet = len(missingRequired) == 0
	}

	var found, missing string
	switch {
	case len(foundTriggers) > 0 && !requiredMet:
		parts := make([]string, len(foundTriggers))
		for i, t := range foundTriggers {
			parts[i] = resolver.Describe(t)
		}
		found = strings.Join(parts, ", ")
		if rule.RequireAll {
			miss := make([]string, 0, len(missingRequired))
			for _, req := range missingRequired {
				miss = append(miss, resolver.Describe(req))
			}
			missing = strings.Join(miss, ", ")
		} else {
			missing = resolver.DescribeJoined(rule.Required, "/")
		}
	case len(foundTriggers) == 0 && len(foundRequired) > 0:
		found = resolver.DescribeJoined(rule.Required, "/")
		missing = resolver.DescribeJoined(rule.Triggers, "/")
	default:
		return models.Exception{}, false
	}

	return models.Exception{
		RuleID:   rule.ID,
		Reason:   fmt.Sprintf("נמצאו: %s\nאך חסרים: %s", found, missing),
		FundID:   &fundID,
		FundName: fundName,
	}, true
}
