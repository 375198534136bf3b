package platform

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Info contains the user paths the tool anchors itself to: the home
// directory scans are resolved against, and the config and data homes
// the inventory store lives under.
type Info struct {
	OS         Platform
	HomeDir    string
	Username   string
	ConfigHome string
	DataHome   string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo resolves the current user's paths
func GetInfo() (*Info, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	home := currentUser.HomeDir

	return &Info{
		OS:         Detect(),
		HomeDir:    home,
		Username:   currentUser.Username,
		ConfigHome: configHome(home),
		DataHome:   dataHome(home),
	}, nil
}

// configHome honors XDG_CONFIG_HOME, falling back to ~/.config.
func configHome(home string) string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(home, ".config")
}

// dataHome honors XDG_DATA_HOME, falling back to ~/.local/share.
func dataHome(home string) string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(home, ".local", "share")
}
