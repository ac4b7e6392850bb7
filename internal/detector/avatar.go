package detector

import (
	"maps"
	"slices"
	"strings"
)

// AvatarMap maps a participant identity (display name or email) to an avatar
// URL. A nil value means the participant is known but has no avatar.
type AvatarMap map[string]*string

// AvatarMatcher looks a requester up in an avatar map. found reports whether
// the matcher claimed the requester, even if the claimed value is nil.
type AvatarMatcher func(requester string, avatars AvatarMap) (url *string, found bool)

// avatarMatchers run in priority order; the first match wins.
var avatarMatchers = []AvatarMatcher{
	matchExact,
	matchCaseInsensitive,
	matchEmailLocalPart,
}

// ResolveAvatar returns the avatar URL for requester, or "" if none matches.
func ResolveAvatar(requester string, avatars AvatarMap) string {
	if len(avatars) == 0 {
		return ""
	}
	for _, match := range avatarMatchers {
		if url, ok := match(requester, avatars); ok {
			if url == nil {
				return ""
			}
			return *url
		}
	}
	return ""
}

func matchExact(requester string, avatars AvatarMap) (*string, bool) {
	url, ok := avatars[requester]
	return url, ok
}

func matchCaseInsensitive(requester string, avatars AvatarMap) (*string, bool) {
	for _, key := range sortedKeys(avatars) {
		if strings.EqualFold(key, requester) {
			return avatars[key], true
		}
	}
	return nil, false
}

// matchEmailLocalPart matches "Bob Smith" against "bob@example.com" by
// checking whether the requester contains the email's local part.
func matchEmailLocalPart(requester string, avatars AvatarMap) (*string, bool) {
	lower := strings.ToLower(requester)
	for _, key := range sortedKeys(avatars) {
		local, _, ok := strings.Cut(key, "@")
		if !ok || local == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(local)) {
			return avatars[key], true
		}
	}
	return nil, false
}

func sortedKeys(avatars AvatarMap) []string {
	return slices.Sorted(maps.Keys(avatars))
}
