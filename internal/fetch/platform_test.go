package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/123", PlatformAshby},
		{"https://jobs.smartrecruiters.com/Acme/123", PlatformSmartRecruiters},
		{"https://notgreenhouse.io.example.com/job", PlatformUnknown},
		{"https://careers.acme.com/jobs/123", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-page")
	assert.Nil(t, PlatformContentSelectors(PlatformUnknown))

	noise := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, noise, ".post-apply")
	assert.Contains(t, noise, "#application-form")
	assert.Equal(t, commonNoise, PlatformNoiseSelectors(PlatformUnknown))
}

func TestPlatformSelectors_ReturnCopies(t *testing.T) {
	sel := PlatformContentSelectors(PlatformLever)
	sel[0] = "changed"
	assert.Equal(t, ".posting-page", PlatformContentSelectors(PlatformLever)[0])
}
