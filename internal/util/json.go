package util

import "strings"

// StripCodeFence removes a leading ```json / ``` fence and the trailing ```
// that models sometimes wrap structured output in.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if nl := strings.IndexByte(content, '\n'); nl >= 0 && !strings.ContainsAny(content[:nl], "{[") {
			// drop the language tag, e.g. ```json
			content = content[nl+1:]
		} else {
			content = strings.TrimPrefix(content, "json")
		}
		content = strings.TrimSpace(content)
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
