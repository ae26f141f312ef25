package logger

import "regexp"

var urlKeyRegex = regexp.MustCompile(`(api_key|access_token|key)=[^&\s]+`)

// RedactSecret masks a credential for safe logging, keeping a short prefix
// so operators can tell configured keys apart.
// "wnd_1234567890abcdef" → "wnd_12***"
func RedactSecret(s string) string {
	if len(s) <= 6 {
		return "***"
	}
	return s[:6] + "***"
}

// RedactURLKey masks api_key/access_token query parameters embedded in URLs.
// Non-URL values pass through unchanged.
func RedactURLKey(s string) string {
	return urlKeyRegex.ReplaceAllString(s, "$1=***")
}
