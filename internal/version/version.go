// ABOUTME: Version information for the ASIF tools
// ABOUTME: Product, manufacturer and release version constants
package version

const (
	Version      = "0.1.0"
	Product      = "asif"
	Manufacturer = "Resonate Protocol"
)
