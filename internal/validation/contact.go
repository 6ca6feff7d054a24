package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

var (
	phoneChars  = regexp.MustCompile(`^[0-9+().\-\s/]+((ext\.?|x)\s*\d+)?$`)
	phoneDigits = regexp.MustCompile(`\d`)
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// unprofessionalHandles are substrings that make an email handle look unprofessional
var unprofessionalHandles = []string{
	"babe", "baby", "boss", "crazy", "cutie", "drunk", "gamer", "hottie",
	"killer", "lover", "party", "princess", "sexy", "stoner", "xxx",
}

func checkContact(in *input, c *collector) {
	contact := in.resume.Contact

	if strings.TrimSpace(contact.Name) == "" {
		c.add("missing_name", at("contact"), "Contact name is missing")
	}

	email := strings.TrimSpace(contact.Email)
	switch {
	case email == "":
		c.add("missing_email", at("contact"), "Contact email is missing")
	case fieldValidator.Var(email, "email") != nil:
		c.add("invalid_email", at("contact"), fmt.Sprintf("Email %q is not a valid address", email))
	default:
		handle := strings.ToLower(email[:strings.LastIndex(email, "@")])
		for _, term := range unprofessionalHandles {
			if strings.Contains(handle, term) {
				c.add("unprofessional_email", at("contact"),
					fmt.Sprintf("Email handle %q looks unprofessional", handle))
				break
			}
		}
	}

	phone := strings.TrimSpace(contact.Phone)
	if phone == "" {
		c.add("missing_phone", at("contact"), "Contact phone is missing")
	} else if !validPhone(phone) {
		c.add("invalid_phone", at("contact"), fmt.Sprintf("Phone %q does not look like a phone number", phone))
	}

	if strings.TrimSpace(contact.Location) == "" {
		c.add("missing_location", at("contact"), "Contact location is missing")
	}

	links := 0
	for _, link := range contact.Links {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		links++
		if !validLink(link) {
			c.add("invalid_link", at("contact"), fmt.Sprintf("Link %q is not a valid URL", link))
		}
	}
	if links == 0 {
		c.add("missing_profile_link", at("contact"), "Add a LinkedIn, GitHub or portfolio link")
	}
}

func validPhone(phone string) bool {
	if !phoneChars.MatchString(strings.ToLower(phone)) {
		return false
	}
	main := strings.ToLower(phone)
	if idx := strings.IndexAny(main, "ex"); idx >= 0 {
		main = main[:idx]
	}
	digits := len(phoneDigits.FindAllString(main, -1))
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// validLink accepts bare hosts such as "linkedin.com/in/jane" by assuming https
func validLink(link string) bool {
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	if fieldValidator.Var(link, "url") != nil {
		return false
	}
	host := strings.SplitN(strings.SplitN(link, "://", 2)[1], "/", 2)[0]
	return strings.Contains(host, ".")
}
