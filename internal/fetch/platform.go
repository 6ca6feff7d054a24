package fetch

import (
	"net/url"
	"slices"
	"strings"
)

// Platform is a job board whose page layout is known
type Platform string

// Known job boards
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformUnknown         Platform = "unknown"
)

// board describes where a job board puts the posting and what to strip around it
type board struct {
	platform Platform
	hosts    []string // host suffixes
	content  []string
	noise    []string
}

var boards = []board{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", ".job-post-container", "#content"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".gwt-HTML"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "[class*='_description_']"},
		noise:    []string{"[class*='_applicationForm']"},
	},
	{
		platform: PlatformSmartRecruiters,
		hosts:    []string{"smartrecruiters.com"},
		content:  []string{"[itemprop='description']", ".job-sections"},
		noise:    []string{".job-apply", ".sticky-apply"},
	},
}

// commonNoise is removed from every board's pages: application forms, EEO notices and sharing widgets
var commonNoise = []string{
	"#application-form", ".application--container", "[data-testid='application-form']",
	".self-identification", ".legal-disclosure", "[data-testid='eeo']",
	".social-links", ".gdpr-notice",
}

// DetectPlatform identifies the job board from a posting URL's host
func DetectPlatform(rawURL string) Platform {
	if b, ok := boardFor(rawURL); ok {
		return b.platform
	}
	return PlatformUnknown
}

func boardFor(rawURL string) (board, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return board{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, b := range boards {
		for _, suffix := range b.hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return b, true
			}
		}
	}
	return board{}, false
}

// PlatformContentSelectors returns the posting body selectors of a job board, most specific
// first. Unknown boards have none; the generic selectors apply to every page.
func PlatformContentSelectors(platform Platform) []string {
	for _, b := range boards {
		if b.platform == platform {
			return slices.Clone(b.content)
		}
	}
	return nil
}

// PlatformNoiseSelectors returns the selectors to strip from a board's pages
func PlatformNoiseSelectors(platform Platform) []string {
	noise := slices.Clone(commonNoise)
	for _, b := range boards {
		if b.platform == platform {
			return append(noise, b.noise...)
		}
	}
	return noise
}
