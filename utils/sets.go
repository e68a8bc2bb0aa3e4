package utils

import "slices"

// FindMissingItems returns the items of wanted that are not present in known.
// It is used to report recipients whose username does not appear in the chat
// directory.
//
// Parameters:
//   - known: The values that are available, e.g. the directory usernames.
//   - wanted: The values being looked up.
//
// Returns:
//   - []string: The items of wanted missing from known, in the order of wanted.
//     Never nil, so an all-found lookup encodes as [] rather than null.
func FindMissingItems(known, wanted []string) []string {
	// Simulate a set using a map
	set := make(map[string]struct{}, len(known))
	for _, val := range known {
		set[val] = struct{}{}
	}

	missing := []string{}
	for _, val := range wanted {
		if _, found := set[val]; !found {
			missing = append(missing, val)
		}
	}

	return missing
}

// FindDuplicates returns every string that occurs more than once, sorted so
// that config errors read the same on every run.
func FindDuplicates(items []string) []string {
	seen := make(map[string]bool)
	duplicates := make(map[string]bool)
	for _, str := range items {
		if seen[str] {
			duplicates[str] = true
		} else {
			seen[str] = true
		}
	}

	result := make([]string, 0, len(duplicates))
	for dup := range duplicates {
		result = append(result, dup)
	}
	slices.Sort(result)
	return result
}
