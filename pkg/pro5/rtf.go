package pro5

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// rtfHeader はフォントテーブル・カラーテーブル・中央揃えの段落設定です
var rtfHeader = []string{
	`{\rtf1\ansi\ansicpg1252\cocoartf1038\cocoasubrtf320`,
	`{\fonttbl\f0\fswiss\fcharset0 Helvetica;}`,
	`{\colortbl;\red255\green255\blue255;}`,
	`\pard\tx560\tx1120\tx1680\tx2240\tx2800\tx3360\tx3920\tx4480\tx5040\tx5600\tx6160\tx6720\qc\pardirnatural`,
	``,
}

// rtfBody は本文の書式（フォントサイズ 48pt、白）です
const rtfBody = `\f0\fs96 \cf1 `

// BuildRTF は歌詞を 1 枚のスライド用の RTF 文書にします
func BuildRTF(lyrics string) string {
	lines := append([]string{}, rtfHeader...)
	lines = append(lines, rtfBody+escapeRTF(lyrics)+"}")
	return strings.Join(lines, "\n")
}

// EncodeRTF は RTF 文書を改行なしの base64 にします
func EncodeRTF(lyrics string) string {
	return base64.StdEncoding.EncodeToString([]byte(BuildRTF(lyrics)))
}

// escapeRTF は制御文字をエスケープし、改行を RTF の改行に置き換えます。
// ASCII 以外の文字は cp1252 で表せれば \'hh、表せなければ \uN? にします。
func escapeRTF(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			b.WriteString("\\\n")
		case r == '\n':
			b.WriteString("\\\n")
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x80:
			b.WriteRune(r)
		default:
			if c, ok := charmap.Windows1252.EncodeRune(r); ok {
				fmt.Fprintf(&b, `\'%02x`, c)
				continue
			}
			for _, u := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&b, `\u%d?`, int16(u))
			}
		}
	}
	return b.String()
}
