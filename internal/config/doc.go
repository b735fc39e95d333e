// Package config provides configuration structures and utilities for
// DesignLens. It defines the main configuration options for auditing
// sites, crawling settings, and report generation preferences.
package config
