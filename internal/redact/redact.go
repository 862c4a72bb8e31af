// Package redact masks secret values in strings destined for logs.
package redact

import "strings"

// Mask is the replacement written over secret values.
const Mask = "****"

// String replaces every occurrence of each secret in s with Mask.
// Empty secrets are ignored.
func String(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, Mask)
	}
	return s
}

// Command joins a command name and its arguments into a single loggable
// string with all secrets masked.
func Command(name string, args []string, secrets ...string) string {
	return String(name+" "+strings.Join(args, " "), secrets...)
}
