package metrics

import "strings"

var kindLabels = map[string]string{
	"timeout":          "Timeout",
	"connection_error": "Connection error",
	"dns_error":        "DNS error",
	"tls_error":        "TLS error",
	"protocol_error":   "Protocol error",
	"other":            "Other error",
}

// DisplayKind returns a human-friendly label for a failure kind. Unknown
// kinds are prettified rather than dropped so new classifications surface in
// reports without a mapping update.
func DisplayKind(kind string) string {
	cleaned := strings.TrimSpace(kind)
	if cleaned == "" {
		return "Unknown error"
	}
	if label, ok := kindLabels[cleaned]; ok {
		return label
	}

	words := strings.Split(cleaned, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		if i == 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		} else {
			words[i] = strings.ToLower(word)
		}
	}
	return strings.Join(words, " ")
}
