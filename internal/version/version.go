// ABOUTME: Version information for LTCSync
// ABOUTME: Reported in hello messages and printed by the CLIs
package version

const (
	// Version is the release version.
	Version = "0.3.0"

	// Product is the product name sent to broadcast clients.
	Product = "LTCSync"

	// Manufacturer identifies the implementation.
	Manufacturer = "ltcsync"
)

// String returns the product name and version, e.g. "LTCSync 0.3.0".
func String() string {
	return Product + " " + Version
}
