// Package report renders scan results.
//
// The text format is a fixed-width table meant for terminals:
//
//			Woke applications installed on HOST
//
//	firefox             firefox-esr         Mozilla web browser
//
// Application names are padded to [ColumnWidth] columns. Notes and
// alternatives, when enabled in [Options], are padded by the same width
// measured against the package list. The json, yaml and toml formats encode
// a [Document] for machine consumption.
package report
