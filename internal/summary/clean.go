package summary

import "strings"

// Clean turns literal "\n" sequences into newlines, drops any remaining
// backslashes and appends a trailing newline.
func Clean(reply string) string {
	out := strings.ReplaceAll(reply, `\n`, "\n")
	out = strings.ReplaceAll(out, `\`, "")
	return out + "\n"
}
