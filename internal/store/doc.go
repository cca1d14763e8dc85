// Package store locates the rules store and inventories the rulesets in it.
// The store is a plain directory whose visible subdirectories are rulesets,
// one per target project. Resolution order for the store root: --store flag,
// environment variable, config file, current working directory.
package store
