// Package report renders attribution reports as text, JSON, or CSV.
package report
