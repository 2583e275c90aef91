package pro5

import (
	"regexp"
	"strings"
)

var copyrightPattern = regexp.MustCompile(`(\d{4}) (.*)`)

// SplitCopyright は "<4桁の年> <発行者>" 形式の著作権表示を年と発行者に分けます。
// 形式に合わない場合、年は空で発行者は全体になります。どちらの場合も © は取り除きます。
func SplitCopyright(copyright string) (year, publisher string) {
	if copyright == "" {
		return "", ""
	}
	publisher = copyright
	if m := copyrightPattern.FindStringSubmatch(copyright); m != nil {
		year = m[1]
		publisher = m[2]
	}
	publisher = strings.TrimSpace(strings.ReplaceAll(publisher, "©", ""))
	return year, publisher
}
