// Package mirror plans and applies the symlink mirror of a ruleset into a
// target project. It derives the source tree from the target's basename,
// produces one link task per regular file, and provides the forward pass
// (link), its inverse (unlink with empty-directory pruning), and a stateless
// status inspection of the expected link set.
package mirror
