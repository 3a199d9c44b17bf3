package version

import (
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const unknownCommit = "unknown"

type VersionResponse struct {
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

var Version VersionResponse

func init() {
	Version = loadVersion()
}

func loadVersion() VersionResponse {
	version := VersionResponse{Commit: unknownCommit}

	if info, ok := debug.ReadBuildInfo(); ok {
		version.GoVersion = info.GoVersion
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				version.Commit = setting.Value
				return version
			}
		}
	}

	// Binaries built with `go run` or in tests carry no vcs info.
	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err == nil {
		version.Commit = strings.TrimSpace(string(output))
	}

	return version
}

func SetupRoutes(app *fiber.App) {
	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}
