package validators

import (
	"fmt"
	"regexp"
)

var (
	phoneRe = regexp.MustCompile(`^\+?\d{10,15}$`)
	sinRe   = regexp.MustCompile(`^\d{9}$`)
)

// MaxServiceDurationMin caps a single service at 2.5 hours.
const MaxServiceDurationMin = 150

func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}

func IsSINValid(sin string) bool {
	return sinRe.MatchString(sin)
}

func ValidateDuration(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("duration must be at least 1 minute")
	}
	if minutes > MaxServiceDurationMin {
		return fmt.Errorf("duration cannot be more than %d minutes", MaxServiceDurationMin)
	}
	return nil
}

func ValidateMargin(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("margin percent must be between 0 and 100")
	}
	return nil
}
