package extract

import (
	"regexp"
	"strings"

	"github.com/shouni/hospital-exact/pkg/types"
)

// unicodeSpace は文字クラス内で使う空白の集合です。RE2 の \s は ASCII のみなので、
// &nbsp; (U+00A0) などの Unicode 空白と \v を加えています。
const unicodeSpace = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	// メールアドレスは [at] / [dot] で難読化されていることがある
	emailPattern = regexp.MustCompile(`(?i)Email[` + unicodeSpace + `]*:[` + unicodeSpace + `]*` +
		`([^` + unicodeSpace + `@]+(?:\[at\]|@)[^` + unicodeSpace + `@]+(?:\[dot\]|\.)[^` + unicodeSpace + `@]+)`)
	phonePattern   = regexp.MustCompile(`Phone[` + unicodeSpace + `]*:[` + unicodeSpace + `]*([+\d` + unicodeSpace + `-]+)`)
	websitePattern = regexp.MustCompile(`(?i)Website(?: Link)?[` + unicodeSpace + `]*:[` + unicodeSpace + `]*(https?://[^` + unicodeSpace + `]+)`)
	pincodePattern = regexp.MustCompile(`Pincode[` + unicodeSpace + `]*:[` + unicodeSpace + `]*(\d{6})`)

	// addressStopWords のいずれかを含む行で住所の連結を打ち切る
	addressStopWords = []string{"email", "phone", "website", "pincode"}

	emailDeobfuscator = strings.NewReplacer("[at]", "@", "[dot]", ".")
)

// ParseRecord は、改行区切りのブロックテキストから HospitalRecord を組み立てます。
// 入力のみに依存する純粋関数です。見つからないフィールドは空文字列になります。
func ParseRecord(block string) types.HospitalRecord {
	var rec types.HospitalRecord

	lines := splitLines(block)
	if len(lines) > 0 {
		rec.Name = lines[0]
		rec.Address = parseAddress(lines[1:])
	}

	// ラベル検索は行単位ではなくブロック全体を走査する
	if v := findFirst(emailPattern, block); v != "" {
		rec.Email = strings.TrimSpace(emailDeobfuscator.Replace(v))
	}
	rec.Phone = findFirst(phonePattern, block)
	rec.Website = findFirst(websitePattern, block)
	rec.Pincode = findFirst(pincodePattern, block)

	return rec
}

// splitLines は、トリム済みの空でない行を返します。
func splitLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func parseAddress(lines []string) string {
	var parts []string
	for _, line := range lines {
		if containsAny(strings.ToLower(line), addressStopWords) {
			break
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// findFirst は最初の一致のキャプチャグループをトリムして返します。
func findFirst(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
