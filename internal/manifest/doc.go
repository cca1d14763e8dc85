// Package manifest handles parsing and validation of ruleset manifests.
// Every ruleset in the store may carry a ruleset.yaml at its root; the
// package validates it against an embedded JSON Schema and checks version
// strings with the stricter semver rules the schema cannot express.
package manifest
