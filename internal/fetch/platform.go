package fetch

import (
	"net/url"
	"strings"

	"github.com/jonathan/talent-match/internal/ingestion"
)

// Platform is an applicant-tracking system that hosts job postings
type Platform string

// Known job board platforms
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformWorkable        Platform = "workable"
	PlatformUnknown         Platform = "unknown"
)

// platformProfile holds what is known about one job board
type platformProfile struct {
	hosts   []string // host suffixes
	content []string // description selectors, most specific first
	noise   []string // extra elements to drop before extraction
}

var platforms = map[Platform]platformProfile{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='_descriptionText']", "[class*='_description']", "main"},
		noise:   []string{"[class*='_applicationForm']", "[class*='_applyButton']"},
	},
	PlatformSmartRecruiters: {
		hosts:   []string{"smartrecruiters.com"},
		content: []string{"[itemprop='description']", ".job-sections", ".job-description"},
		noise:   []string{".job-apply", ".st-apply-section", ".social-share"},
	},
	PlatformWorkable: {
		hosts:   []string{"workable.com"},
		content: []string{"[data-ui='job-description']", "[data-ui='job-requirements']", "main"},
		noise:   []string{"[data-ui='apply-button']", "[data-ui='application-form']"},
	},
}

// commonNoise applies to every platform
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container", "[data-testid='application-form']",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", "[data-testid='eeo']", ".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".social-links",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

// DetectPlatform identifies the job board hosting a URL by its host name
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for platform, profile := range platforms {
		for _, suffix := range profile.hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the description selectors for a platform,
// followed by the generic job posting selectors
func PlatformContentSelectors(platform Platform) []string {
	profile, ok := platforms[platform]
	if !ok {
		return ingestion.JobPostingSelectors()
	}
	return append(append([]string{}, profile.content...), ingestion.JobPostingSelectors()...)
}

// PlatformNoiseSelectors returns the elements removed before text extraction
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string{}, commonNoise...)
	return append(out, platforms[platform].noise...)
}
