package impl

import (
	"context"
	"strconv"
	"strings"

	"stayhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	minUsernameLength      = 3
	maxUsernameProbes      = 10
	usernameFallbackPrefix = "user"
	randomSuffixLength     = 8
)

// usernameFromEmail derives a base handle from the local part of an email:
// lowercased, stripped to letters and digits, and padded with a prefix when
// the result is too short to stand on its own.
func usernameFromEmail(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		localPart = email[:at]
	}

	var base strings.Builder
	for _, r := range strings.ToLower(localPart) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			base.WriteRune(r)
		}
	}

	username := base.String()
	if len(username) < minUsernameLength {
		username = usernameFallbackPrefix + username
	}

	return username
}

// resolveAvailableUsername finds a free handle starting from the email-derived
// base, probing numeric suffixes and finally falling back to a random suffix
// so the signup cannot loop forever under pathological collision rates.
func resolveAvailableUsername(ctx context.Context, identityRepo repository.IdentityRepository, email string) (string, error) {
	base := usernameFromEmail(email)

	candidate := base
	for probe := 1; probe <= maxUsernameProbes; probe++ {
		_, err := identityRepo.FindByUsername(ctx, candidate)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return candidate, nil
			}

			return "", errors.Wrap(err, "failed to probe username availability")
		}

		candidate = base + strconv.Itoa(probe)
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:randomSuffixLength]

	return base + suffix, nil
}
