package token

const (
	maskPrefixLen = 8
	maskSuffixLen = 4
)

// Mask returns a preview safe to print: the first 8 characters, an ellipsis
// and, for tokens longer than 12 characters, the last 4.
func Mask(token string) string {
	prefix := token
	if len(prefix) > maskPrefixLen {
		prefix = prefix[:maskPrefixLen]
	}
	suffix := ""
	if len(token) > maskPrefixLen+maskSuffixLen {
		suffix = token[len(token)-maskSuffixLen:]
	}
	return prefix + "..." + suffix
}
