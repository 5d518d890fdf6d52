package extract

// searchPatterns tries each fallback pattern for key against the combined
// text, stopping at the first match. The first capture group becomes the
// value; the full match is kept as source.
func searchPatterns(text string, key FieldKey, res *Result) {
	for _, re := range fieldPatterns[key] {
		if m := re.FindStringSubmatch(text); m != nil {
			res.set(key, m[1], m[0])
			return
		}
	}
}
