package llm

import "strings"

// ExtractJSONPayload pulls the JSON document out of a raw model response.
// Models that were told to return "only JSON" still wrap it in markdown code
// fences or a line of prose often enough that we tolerate both: fences are
// stripped, then the substring from the first brace/bracket to its matching
// last closer is taken. Returns "" when no candidate payload exists.
func ExtractJSONPayload(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// drop the opening fence line ("```" or "```json") and a closing fence
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			return ""
		}
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	var closer byte
	if s[start] == '{' {
		closer = '}'
	} else {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}
