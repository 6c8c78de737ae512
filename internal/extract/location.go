package extract

import (
	"regexp"
	"strings"
)

// locationPatterns are the pattern families for data-storage locations:
// cloud-provider region phrasing, server hosting, data storage, and a bare
// enumeration of known jurisdictions. The last family has no capture group;
// the whole match is taken as the location.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:AWS|Amazon|Azure|Google Cloud|GCP).*?(?:in|regions?)\s+([A-Za-z\s,]+)`),
	regexp.MustCompile(`(?i)servers?.*?(?:located|hosted|stored).*?(?:in|at)\s+([A-Za-z\s,]+)`),
	regexp.MustCompile(`(?i)data.*?(?:stored|hosted|processed).*?(?:in|at)\s+([A-Za-z\s,]+)`),
	regexp.MustCompile(`(?i)Ireland|Singapore|Qatar|UAE|Dubai|USA|Europe|Asia`),
}

// DataLocations extracts every data-storage location mention across all
// pattern families, trimmed and deduplicated. Fragments of length <= 2 are
// discarded. Returns nil when no location is found anywhere.
func DataLocations(text string) []string {
	var locations []string
	seen := make(map[string]bool)

	for _, pattern := range locationPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			location := m[0]
			if len(m) > 1 {
				location = m[1]
			}
			location = strings.TrimSpace(location)
			if len(location) <= 2 || seen[location] {
				continue
			}
			seen[location] = true
			locations = append(locations, location)
		}
	}

	return locations
}
