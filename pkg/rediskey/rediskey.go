package rediskey

import "fmt"

// Claim rate-limit keys (global convention across services)
const (
	ClaimCooldownPrefix = "claim_cooldown"
	ClaimHourlyPrefix   = "claim_rate"
	ClaimDailyPrefix    = "claim_daily"
)

func NamespaceKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s", namespace, key)
}

// BuildClaimCooldownKey returns "claim_cooldown:{userID}"
func BuildClaimCooldownKey(userID string) string {
	return NamespaceKey(ClaimCooldownPrefix, userID)
}

// BuildClaimHourlyKey returns "claim_rate:{userID}"
func BuildClaimHourlyKey(userID string) string {
	return NamespaceKey(ClaimHourlyPrefix, userID)
}

// BuildClaimDailyKey returns "claim_daily:{userID}:{date}", date being the
// UTC calendar day in YYYY-MM-DD form.
func BuildClaimDailyKey(userID, date string) string {
	return NamespaceKey(ClaimDailyPrefix, fmt.Sprintf("%s:%s", userID, date))
}
