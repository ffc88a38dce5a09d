// Package validate checks hostname syntax for names coming back from providers.
package validate

import "regexp"

// hostnameRegexp matches dotted labels of up to 63 alphanumeric or hyphen
// characters ending in an alphabetic TLD. Wildcards, schemes, and trailing
// dots do not match.
var hostnameRegexp = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsDomain reports whether s is a plausible DNS hostname. Provider payloads
// mix certificate subjects and archived URLs in with real names; anything that
// fails this check is dropped before it reaches the output.
func IsDomain(s string) bool {
	return hostnameRegexp.MatchString(s)
}
