// Package main provides the entry point for the DesignLens CLI.
//
// DesignLens is a visual design and accessibility auditor for websites.
// It crawls a site, inventories its typography and components, extracts
// the color palette, and measures WCAG contrast compliance.
//
// Usage:
//
//	designlens audit <url>
//	designlens report <domain>
//
// See --help for all available options.
package main

// main is the entry point for DesignLens.
func main() {
	Execute()
}
