package lint

import (
	"slices"
	"sync"

	"github.com/leapstack-labs/earlylint/pkg/core"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = &Registry{
	rules: make(map[string]Rule),
}

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule // keyed by ID
}

// Register adds a rule definition to the global registry.
// Call this from init() functions in rule packages.
func Register(def RuleDef) {
	RegisterRule(WrapRuleDef(def))
}

// RegisterRule adds a Rule implementation to the global registry. A rule with
// the same ID replaces the previous one.
func RegisterRule(rule Rule) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.ID()] = rule
}

// All returns all registered rules sorted by ID.
func All() []Rule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]Rule, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sortByID(rules)
	return rules
}

// ByID returns a rule by its ID.
func ByID(id string) (Rule, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// ByCategory returns all rules in a category, sorted by ID.
func ByCategory(category core.Category) []Rule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	var rules []Rule
	for _, rule := range globalRegistry.rules {
		if rule.Category() == category {
			rules = append(rules, rule)
		}
	}
	sortByID(rules)
	return rules
}

// ByKind returns the rules subscribed to a node kind, sorted by ID.
func ByKind(kind Kind) []Rule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	var rules []Rule
	for _, rule := range globalRegistry.rules {
		if slices.Contains(rule.Kinds(), kind) {
			rules = append(rules, rule)
		}
	}
	sortByID(rules)
	return rules
}

// AllRules returns metadata for every registered rule, sorted by ID.
func AllRules() []core.RuleInfo {
	rules := All()
	infos := make([]core.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, GetRuleInfo(r))
	}
	return infos
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]Rule)
}

func sortByID(rules []Rule) {
	slices.SortFunc(rules, func(a, b Rule) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
}
