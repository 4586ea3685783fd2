// Package iconspec holds the static table of icon outputs per platform:
// pixel sizes, project-relative paths, and the alpha policy each platform
// requires. The table is the on-disk contract with the Flutter project
// layout and must not be edited casually.
package iconspec

import (
	"fmt"
	"strings"
)

// AlphaPolicy says what happens to the alpha channel before encoding.
type AlphaPolicy int

const (
	// KeepAlpha passes the resized raster through unchanged.
	KeepAlpha AlphaPolicy = iota
	// FlattenOpaque composites over an opaque white background. iOS and
	// watchOS reject app icons with an alpha channel.
	FlattenOpaque
)

// Spec is one icon output: a square target size and where it goes.
// Idiom/Scale/Point are asset-catalog metadata, set only for specs that
// live inside an AppIcon.appiconset and feed its Contents.json.
type Spec struct {
	Size  int    // output width and height in pixels
	Path  string // project-relative, forward slashes
	Idiom string
	Scale string
	Point string // point size as Xcode writes it, e.g. "83.5x83.5"
}

// Platform is one of the fixed set of supported target platforms.
type Platform string

const (
	Android   Platform = "android"
	IOS       Platform = "ios"
	MacOS     Platform = "macos"
	Windows   Platform = "windows"
	Linux     Platform = "linux"
	Web       Platform = "web"
	Store     Platform = "store"
	IOSLegacy Platform = "ios-legacy"
	Watch     Platform = "watch"
)

const (
	// IOSAppIconSetDir receives ios, ios-legacy and watch outputs.
	IOSAppIconSetDir   = "ios/Runner/Assets.xcassets/AppIcon.appiconset"
	MacOSAppIconSetDir = "macos/Runner/Assets.xcassets/AppIcon.appiconset"

	// WindowsIcoPath is the single multi-frame container the windows
	// specs are packed into instead of individual PNGs.
	WindowsIcoPath = "windows/runner/resources/app_icon.ico"
)

const androidResDir = "android/app/src/main/res"

// androidDensities lists the mipmap qualifiers with the pixel sizes of the
// 48dp launcher icon and the 108dp adaptive-icon foreground at each density.
var androidDensities = []struct {
	qualifier  string
	launcher   int
	foreground int
}{
	{"mdpi", 48, 108},
	{"hdpi", 72, 162},
	{"xhdpi", 96, 216},
	{"xxhdpi", 144, 324},
	{"xxxhdpi", 192, 432},
}

func androidSpecs() []Spec {
	var out []Spec
	for _, name := range []string{"ic_launcher.png", "ic_launcher_round.png"} {
		for _, d := range androidDensities {
			out = append(out, Spec{
				Size: d.launcher,
				Path: fmt.Sprintf("%s/mipmap-%s/%s", androidResDir, d.qualifier, name),
			})
		}
	}
	for _, d := range androidDensities {
		out = append(out, Spec{
			Size: d.foreground,
			Path: fmt.Sprintf("%s/mipmap-%s/ic_launcher_foreground.png", androidResDir, d.qualifier),
		})
	}
	return out
}

// appIcon builds a Spec for an Icon-App-<point>@<scale>.png file in the
// iOS appiconset, matching the Xcode / Flutter Runner template names.
func appIcon(size int, point, scale, idiom string) Spec {
	return Spec{
		Size:  size,
		Path:  fmt.Sprintf("%s/Icon-App-%s@%s.png", IOSAppIconSetDir, point, scale),
		Idiom: idiom,
		Scale: scale,
		Point: point,
	}
}

func iosSpecs() []Spec {
	return []Spec{
		appIcon(40, "20x20", "2x", "iphone"),
		appIcon(60, "20x20", "3x", "iphone"),
		appIcon(29, "29x29", "1x", "iphone"),
		appIcon(58, "29x29", "2x", "iphone"),
		appIcon(87, "29x29", "3x", "iphone"),
		appIcon(40, "40x40", "1x", "ipad"),
		appIcon(80, "40x40", "2x", "iphone"),
		appIcon(120, "40x40", "3x", "iphone"),
		appIcon(120, "60x60", "2x", "iphone"),
		appIcon(180, "60x60", "3x", "iphone"),
		appIcon(76, "76x76", "1x", "ipad"),
		appIcon(152, "76x76", "2x", "ipad"),
		appIcon(167, "83.5x83.5", "2x", "ipad"),
		appIcon(1024, "1024x1024", "1x", "ios-marketing"),
	}
}

// iosLegacySpecs are the pre-iOS-7 icon slots. Opt-in: old Xcode projects
// that still declare them reject an appiconset without the files.
func iosLegacySpecs() []Spec {
	return []Spec{
		appIcon(50, "50x50", "1x", "ipad"),
		appIcon(100, "50x50", "2x", "ipad"),
		appIcon(57, "57x57", "1x", "iphone"),
		appIcon(114, "57x57", "2x", "iphone"),
		appIcon(72, "72x72", "1x", "ipad"),
		appIcon(144, "72x72", "2x", "ipad"),
	}
}

func watchSpecs() []Spec {
	return []Spec{
		appIcon(48, "24x24", "2x", "watch"),
		appIcon(55, "27.5x27.5", "2x", "watch"),
		appIcon(58, "29x29", "2x", "watch"),
		appIcon(80, "40x40", "2x", "watch"),
		appIcon(88, "44x44", "2x", "watch"),
		appIcon(100, "50x50", "2x", "watch"),
		appIcon(172, "86x86", "2x", "watch"),
		appIcon(196, "98x98", "2x", "watch"),
	}
}

// macIcon follows the app_icon_<point>[@2x].png naming of the Flutter
// macOS Runner template.
func macIcon(size, point int, scale string) Spec {
	suffix := ""
	if scale == "2x" {
		suffix = "@2x"
	}
	return Spec{
		Size:  size,
		Path:  fmt.Sprintf("%s/app_icon_%d%s.png", MacOSAppIconSetDir, point, suffix),
		Idiom: "mac",
		Scale: scale,
		Point: fmt.Sprintf("%dx%d", point, point),
	}
}

func macosSpecs() []Spec {
	return []Spec{
		macIcon(16, 16, "1x"),
		macIcon(32, 16, "2x"),
		macIcon(32, 32, "1x"),
		macIcon(64, 32, "2x"),
		macIcon(128, 128, "1x"),
		macIcon(256, 128, "2x"),
		macIcon(256, 256, "1x"),
		macIcon(512, 256, "2x"),
		macIcon(512, 512, "1x"),
		macIcon(1024, 512, "2x"),
	}
}

// windowsSpecs enumerates the 14 frames of app_icon.ico, ascending.
// The entry order here is the directory order inside the container.
func windowsSpecs() []Spec {
	var out []Spec
	for _, s := range []int{16, 20, 24, 30, 32, 36, 40, 48, 60, 64, 72, 96, 128, 256} {
		out = append(out, Spec{Size: s, Path: WindowsIcoPath})
	}
	return out
}

func webSpecs() []Spec {
	return []Spec{
		{Size: 32, Path: "web/favicon.png"},
		{Size: 192, Path: "web/icons/Icon-192.png"},
		{Size: 512, Path: "web/icons/Icon-512.png"},
		{Size: 192, Path: "web/icons/Icon-maskable-192.png"},
		{Size: 512, Path: "web/icons/Icon-maskable-512.png"},
	}
}

func storeSpecs() []Spec {
	return []Spec{
		{Size: 1024, Path: "appstore.png"},
		{Size: 512, Path: "playstore.png"},
	}
}

func linuxSpecs() []Spec {
	return []Spec{{Size: 256, Path: "linux/flutter/app_icon.png"}}
}

var table = map[Platform][]Spec{
	Android:   androidSpecs(),
	IOS:       iosSpecs(),
	MacOS:     macosSpecs(),
	Windows:   windowsSpecs(),
	Linux:     linuxSpecs(),
	Web:       webSpecs(),
	Store:     storeSpecs(),
	IOSLegacy: iosLegacySpecs(),
	Watch:     watchSpecs(),
}

var policies = map[Platform]AlphaPolicy{
	Android:   KeepAlpha,
	IOS:       FlattenOpaque,
	MacOS:     KeepAlpha,
	Windows:   KeepAlpha,
	Linux:     KeepAlpha,
	Web:       KeepAlpha,
	Store:     KeepAlpha,
	IOSLegacy: FlattenOpaque,
	Watch:     FlattenOpaque,
}

// All returns every known platform, in documentation order.
func All() []Platform {
	return []Platform{Android, IOS, MacOS, Windows, Linux, Web, Store, IOSLegacy, Watch}
}

// Defaults returns the platforms processed when --platforms is not given.
// ios-legacy and watch are opt-in only.
func Defaults() []Platform {
	return []Platform{Android, IOS, MacOS, Windows, Linux, Web, Store}
}

// Known reports whether name is a supported platform.
func Known(name string) bool {
	_, ok := table[Platform(name)]
	return ok
}

// SpecsFor returns the ordered spec list for p. The slice is a copy; callers
// may not mutate the table through it.
func SpecsFor(p Platform) []Spec {
	specs := table[p]
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// PolicyFor returns the alpha policy applied to p's outputs.
func PolicyFor(p Platform) AlphaPolicy {
	return policies[p]
}

// AppIconSetDir returns the asset-catalog directory p's outputs land in,
// or "" if p does not use one.
func AppIconSetDir(p Platform) string {
	switch p {
	case IOS, IOSLegacy, Watch:
		return IOSAppIconSetDir
	case MacOS:
		return MacOSAppIconSetDir
	}
	return ""
}

// MaxTargetSize returns the largest pixel size requested by any spec of the
// given platforms. Zero if the list is empty.
func MaxTargetSize(platforms []Platform) int {
	max := 0
	for _, p := range platforms {
		for _, s := range table[p] {
			if s.Size > max {
				max = s.Size
			}
		}
	}
	return max
}

// ParsePlatforms validates a comma-separated platform list. An empty string
// selects the defaults. Unknown names are a configuration error; nothing is
// partially accepted. Duplicates are dropped, first occurrence wins.
func ParsePlatforms(csv string) ([]Platform, error) {
	if strings.TrimSpace(csv) == "" {
		return Defaults(), nil
	}
	seen := make(map[Platform]bool)
	var out []Platform
	for _, part := range strings.Split(csv, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !Known(name) {
			return nil, fmt.Errorf("unknown platform %q (known: %s)", name, knownList())
		}
		p := Platform(name)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) == 0 {
		return Defaults(), nil
	}
	return out, nil
}

func knownList() string {
	names := make([]string, 0, len(table))
	for _, p := range All() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
