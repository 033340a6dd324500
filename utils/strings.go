package utils

import (
	"regexp"
	"strings"
)

// FormatContactName joins a contact's name parts for display
func FormatContactName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return "Unknown"
	}
	return name
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	// Replace invalid characters with underscore
	reg := regexp.MustCompile(`[<>:"/\\|?*]`)
	cleaned := reg.ReplaceAllString(filename, "_")

	// Remove extra spaces and trim
	cleaned = strings.TrimSpace(cleaned)
	cleaned = regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, "_")

	return cleaned
}
