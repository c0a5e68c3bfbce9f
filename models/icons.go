package models

import "strings"

// IconKey names a symbol the site knows how to draw. Stored icon strings are
// free text; they are resolved through the tables below and fall back to a
// default when unknown.
type IconKey string

const (
	IconPalette   IconKey = "palette"
	IconCode      IconKey = "code"
	IconRocket    IconKey = "rocket"
	IconZap       IconKey = "zap"
	IconGlobeLock IconKey = "globe-lock"
	IconAppWindow IconKey = "app-window"
	IconBot       IconKey = "bot"
	IconFileCode  IconKey = "file-code"
	IconCloud     IconKey = "cloud"
	IconCPU       IconKey = "cpu"

	IconGithub    IconKey = "github"
	IconLinkedin  IconKey = "linkedin"
	IconTwitter   IconKey = "twitter"
	IconInstagram IconKey = "instagram"
)

var expertiseIcons = []IconKey{
	IconPalette,
	IconCode,
	IconRocket,
	IconZap,
	IconGlobeLock,
	IconAppWindow,
	IconBot,
	IconFileCode,
	IconCloud,
	IconCPU,
}

var socialIcons = []IconKey{
	IconGithub,
	IconLinkedin,
	IconTwitter,
	IconInstagram,
}

// ExpertiseIcons returns the icon keys usable by expertise entries
func ExpertiseIcons() []IconKey {
	return append([]IconKey(nil), expertiseIcons...)
}

// SocialIcons returns the icon keys usable by social links
func SocialIcons() []IconKey {
	return append([]IconKey(nil), socialIcons...)
}

// ResolveExpertiseIcon maps a stored icon name to a known key, falling back to IconCode.
// Matching is exact.
func ResolveExpertiseIcon(name string) IconKey {
	return resolveIcon(expertiseIcons, name, IconCode, false)
}

// ResolveSocialIcon maps a stored icon name to a known key, falling back to IconGithub.
// Matching ignores case.
func ResolveSocialIcon(name string) IconKey {
	return resolveIcon(socialIcons, name, IconGithub, true)
}

func resolveIcon(known []IconKey, name string, fallback IconKey, foldCase bool) IconKey {
	if foldCase {
		name = strings.ToLower(strings.TrimSpace(name))
	}
	for _, key := range known {
		if string(key) == name {
			return key
		}
	}
	return fallback
}
