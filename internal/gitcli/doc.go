// Package gitcli wraps the git commands used for contributor attribution.
//
// Client runs ls-files, rev-list, blame, and log through an execshell-style
// executor, and the parsers in this package turn their porcelain output into
// BlameLine and NumstatEntry values.
package gitcli
