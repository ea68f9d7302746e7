// Package utils holds the configuration loader, logger factory, and output
// helpers shared by the gitattrib commands.
package utils
