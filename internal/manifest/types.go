package manifest

// FileName is the manifest file expected at the root of a ruleset.
const FileName = "ruleset.yaml"

// RulesetManifest describes a single ruleset in the store. Only the name is
// required; everything else is informational.
type RulesetManifest struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string   `yaml:"version,omitempty" json:"version,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}
