package domain

import "strings"

// Platform is the advertising platform a campaign runs on.
type Platform string

const (
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformGoogleAds Platform = "Google Ads"
	PlatformTikTok    Platform = "TikTok"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformTwitter   Platform = "Twitter"
	PlatformYouTube   Platform = "YouTube"
	PlatformOther     Platform = "Other"
)

// Platforms lists every recognized platform in display order.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformGoogleAds,
	PlatformTikTok,
	PlatformLinkedIn,
	PlatformTwitter,
	PlatformYouTube,
	PlatformOther,
}

// Code returns the three letter upper-case code used as the first segment
// of a campaign ID.
func (p Platform) Code() string {
	return shortCode(string(p))
}

// Valid reports whether p is one of the recognized platforms.
func (p Platform) Valid() bool {
	for _, v := range Platforms {
		if v == p {
			return true
		}
	}
	return false
}

// platformAliases maps channel kinds onto the platform recorded for them.
var platformAliases = map[string]string{
	"search":  string(PlatformGoogleAds),
	"google":  string(PlatformGoogleAds),
	"social":  string(PlatformFacebook),
	"meta":    string(PlatformFacebook),
	"x":       string(PlatformTwitter),
	"video":   string(PlatformYouTube),
	"display": string(PlatformOther),
}

// ParsePlatform resolves a display name, slug, code or alias such as
// "search" or "social" into a Platform. The match is case-insensitive and
// ignores spaces, dashes and underscores.
func ParsePlatform(s string) (Platform, error) {
	names := make([]string, len(Platforms))
	for i, p := range Platforms {
		names[i] = string(p)
	}
	if i, ok := resolveName(s, names, platformAliases); ok {
		return Platforms[i], nil
	}
	return "", &InvalidCriteriaError{Field: "platform", Value: s, Reason: "unrecognized platform"}
}

// PlatformByCode returns the platform whose Code equals code.
func PlatformByCode(code string) (Platform, bool) {
	for _, p := range Platforms {
		if p.Code() == code {
			return p, true
		}
	}
	return "", false
}

func shortCode(name string) string {
	letters := make([]rune, 0, 3)
	for _, r := range name {
		if r == ' ' {
			continue
		}
		letters = append(letters, r)
		if len(letters) == 3 {
			break
		}
	}
	return strings.ToUpper(string(letters))
}

// resolveName returns the index of the name matching s exactly, by code, by
// alias, or as the only name that s is a prefix of (at least three
// characters). Alias keys are lookup keys; values are names.
func resolveName(s string, names []string, aliases map[string]string) (int, bool) {
	key := lookupKey(s)
	if key == "" {
		return 0, false
	}
	if alias, ok := aliases[key]; ok {
		key = lookupKey(alias)
	}
	for i, n := range names {
		if key == lookupKey(n) || key == strings.ToLower(shortCode(n)) {
			return i, true
		}
	}
	if len(key) < 3 {
		return 0, false
	}
	found := -1
	for i, n := range names {
		if strings.HasPrefix(lookupKey(n), key) {
			if found >= 0 {
				return 0, false
			}
			found = i
		}
	}
	return found, found >= 0
}

func lookupKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '&', '.':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
