package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules/closures"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules/expressions"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules/functions"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules/generics"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules/literals"
	_ "github.com/leapstack-labs/earlylint/pkg/lint/rules/patterns"
)
