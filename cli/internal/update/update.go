package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"

	"github.com/satishbabariya/quickform-go/cli/internal/ui"
)

// LatestKnown is the most recent released version baked into the binary at
// build time. Release tooling overrides this via ldflags.
var LatestKnown = "0.2.0"

// CheckForUpdates compares the running version against the latest known
// release and prints an upgrade hint when behind.
func CheckForUpdates(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latest, err := version.NewVersion(LatestKnown)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Latest version:  %s\n", LatestKnown)
		fmt.Printf("\nUpdate with: go install github.com/satishbabariya/quickform-go/cli@latest\n")
		fmt.Printf("Or download: %s\n", GetDownloadURL(LatestKnown))
	}

	return nil
}

// GetDownloadURL returns the release download URL for the current platform.
func GetDownloadURL(ver string) string {
	return fmt.Sprintf("https://github.com/satishbabariya/quickform-go/releases/download/v%s/quickform-%s-%s",
		ver, runtime.GOOS, runtime.GOARCH)
}
