package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// platformHosts maps host suffixes to platforms.
var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

var contentSelectors = map[Platform][]string{
	PlatformGreenhouse: {".job__description.body", ".job__description", ".job-description__content", "#content"},
	PlatformLever:      {".posting-page", ".posting-description", ".content"},
	PlatformWorkday:    {"[data-automation-id='jobDescription']", ".job-description"},
	PlatformUnknown: {
		".job-description", "#job-description", ".job-details", ".posting-content",
		"[data-testid='job-description']", "main", "article", "#content", ".content",
	},
}

// commonNoise is removed from every page before extraction.
var commonNoise = []string{
	"nav", "footer", "header", "script", "style", "noscript", "form",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
	".application-form", "#application-form", ".apply-button-container",
	".eeo-statement", ".eeo-section", ".voluntary-disclosure", ".legal-disclosure",
	".social-share", ".share-buttons",
}

var platformNoise = map[Platform][]string{
	PlatformGreenhouse: {".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	PlatformLever:      {".apply-section", ".lever-application-form", ".posting-apply"},
	PlatformWorkday:    {"[data-automation-id='applyButton']", ".application-section"},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the selectors tried, in order, to locate the
// description on a platform's pages.
func ContentSelectors(platform Platform) []string {
	if selectors, ok := contentSelectors[platform]; ok {
		return selectors
	}
	return contentSelectors[PlatformUnknown]
}

// NoiseSelectors returns the elements removed before extraction.
func NoiseSelectors(platform Platform) []string {
	out := make([]string, 0, len(commonNoise)+len(platformNoise[platform]))
	out = append(out, commonNoise...)
	return append(out, platformNoise[platform]...)
}
