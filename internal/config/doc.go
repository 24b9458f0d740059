// Package config provides configuration structures and utilities for sirescan.
// It defines the crawl parameters (page-year range, politeness delays,
// retry policy), the extraction settings (section marker, fee-year
// convention), and report generation preferences.
package config
