package wireguard

import (
	"bufio"
	"strings"
)

// RedactKeys redacts PrivateKey and PresharedKey values for logging.
func RedactKeys(cfg string) string {
	scanner := bufio.NewScanner(strings.NewReader(cfg))
	var b strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "PrivateKey =") {
			b.WriteString("PrivateKey = <redacted>\n")
			continue
		}
		if strings.HasPrefix(trimmed, "PresharedKey =") {
			b.WriteString("PresharedKey = <redacted>\n")
			continue
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
