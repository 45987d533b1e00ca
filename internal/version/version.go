// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Place search with Open-Meteo geocoding, offline catalog fallback
// 0.2.0 - Seasons and world clock views, YAML city catalogs, headless modes
// 0.1.0 - Initial release: globe view, terminator shading, day/night clock
