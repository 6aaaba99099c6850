package locate

import (
	"cmp"
	"path"
	"strings"
)

// versionParts returns the digit runs of name's base, in order.
func versionParts(name string) []string {
	var parts []string
	base := path.Base(name)
	for i := 0; i < len(base); {
		if !isDigit(base[i]) {
			i++
			continue
		}
		j := i
		for j < len(base) && isDigit(base[j]) {
			j++
		}
		parts = append(parts, strings.TrimLeft(base[i:j], "0"))
		i = j
	}
	return parts
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// compareVersions orders names by the numbers embedded in them, so
// "x-3.10.0.jar" sorts after "x-3.9.2.jar". A name whose numbers extend
// another's sorts after it, which puts versioned names above unversioned
// ones. Equal versions fall back to plain string order.
func compareVersions(a, b string) int {
	pa, pb := versionParts(a), versionParts(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := cmp.Compare(len(pa[i]), len(pb[i])); c != 0 {
			return c
		}
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(pa), len(pb)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
