// Package scaffold generates new rulesets from embedded templates. It powers
// the "rules new" command, producing a ruleset directory with a valid
// manifest and a starter rules file.
package scaffold
