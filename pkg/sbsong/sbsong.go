// Package sbsong は .sbsong 形式の曲ファイルを読み込むためのパッケージです。
//
// .sbsong は仕様が公開されていないバイナリ形式で、(type, length, flags) の
// タグに続いてペイロードが並ぶレコード列になっています。ペイロードの形は
// type ではなく主に flags から推測する必要があるため、デコーダは複数の
// ヒューリスティックを順に試し、理解できない形に出会った時点で読み込みを
// 止めて診断情報を返します。
//
// 基本的な使い方:
//
//	data, _ := os.ReadFile("song.sbsong")
//	result := sbsong.Decode(data)
//	if result.Stalled() {
//	    // result.Diagnostics に停止位置のスナップショットが入っています
//	}
//	song, err := sbsong.Interpret(result.Records)
package sbsong

import "strconv"

// FieldType はタグの type バイトです
type FieldType byte

// 既知のフィールド
const (
	FieldTitle         FieldType = 1
	FieldArtist        FieldType = 2
	FieldCopyright     FieldType = 3
	FieldLicenseNumber FieldType = 5
	FieldKeyword       FieldType = 29
	FieldOrder         FieldType = 31
	FieldSongPart      FieldType = 37
	FieldVersion       FieldType = 38
)

// 名前を持たないが読み込みの制御に使われる type
const (
	// typeByteValue は flags が 2 のとき 1 バイトだけを持ちます
	typeByteValue FieldType = 36

	// typeOpaqueTail 以降に既知の曲フィールドは見つかっていないため、ここで読み込みを打ち切ります
	typeOpaqueTail FieldType = 34

	// typeLastField はペイロードを 1 つだけ持つ場合、ファイル最後のフィールドになります（おそらく）
	typeLastField FieldType = 39

	// typeFinalField は常にファイル最後のフィールドです
	typeFinalField FieldType = 40

	// typeShifted はタグが次のレコードにずれて読まれた形式で現れます
	typeShifted FieldType = 0
)

// flags の値
const (
	// flagsString と flagsShortString は 1 バイト長の文字列です
	flagsString      uint32 = 6
	flagsShortString uint32 = 2

	// flagsLowByteMask で取り出した下位バイトが flagsString なら文字列です
	flagsLowByteMask uint32 = 0x00FF

	// flagsPaddedString は 4 バイト長（リトルエンディアン）の文字列です
	flagsPaddedString uint32 = 20

	// flagsEmpty は length が 1 のとき値を持ちません
	flagsEmpty uint32 = 9

	// flagsTerminator は length が 5 のとき終端を示します
	flagsTerminator uint32 = 18

	// flagsWidePart はよく分かっていませんが、曲パートの本文が 4 バイト長の文字列になります
	flagsWidePart uint32 = 0x01000006
)

// 曲パートのサブフラグ
const (
	subFlagsString       byte = 6
	subFlagsPaddedString byte = 20
	subFlagsAltString    byte = 12
	subFlagsInt          byte = 18
)

// length の調整に使う固定オーバーヘッド
const (
	stringOverhead       = 2
	paddedStringOverhead = 5
)

// typeShifted のときに巻き戻すバイト数
const shiftedRewind = 20

var fieldNames = map[FieldType]string{
	FieldTitle:         "title",
	FieldArtist:        "artist",
	FieldCopyright:     "copyright",
	FieldLicenseNumber: "ccli#",
	FieldKeyword:       "keyword",
	FieldOrder:         "typical order",
	FieldSongPart:      "song part",
	FieldVersion:       "version",
}

// Name は既知のフィールド名を返します
func (t FieldType) Name() (string, bool) {
	name, ok := fieldNames[t]
	return name, ok
}

// String はフィールド名、不明な場合は数値を返します
func (t FieldType) String() string {
	if name, ok := t.Name(); ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// Tag はレコードの先頭にある (type, length, flags) の組です
type Tag struct {
	Type   FieldType
	Length uint32
	Flags  uint32
}

// isString は flags が 1 バイト長の文字列を示すか判定します
func (t Tag) isString() bool {
	return t.Flags == flagsString || t.Flags == flagsShortString || t.Flags&flagsLowByteMask == flagsString
}

// EndMarker は残り 3 バイトで 4 バイト整数を読もうとしたときの値です
type EndMarker struct{}

// String は "eof" を返します
func (EndMarker) String() string {
	return "eof"
}

// Record はデコードされた 1 レコードです
type Record struct {
	Type   FieldType
	Values []any
	// Remainder は length から読み込んだ文字列分を差し引いた値です（デバッグ用）
	Remainder int64
}

// Label は既知ならフィールド名、不明なら type の数値を返します
func (r Record) Label() any {
	if name, ok := r.Type.Name(); ok {
		return name
	}
	return int(r.Type)
}

// Known は type が既知のフィールドか返します
func (r Record) Known() bool {
	_, ok := r.Type.Name()
	return ok
}

// StringAt は i 番目の値を文字列として返します
func (r Record) StringAt(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return stringify(r.Values[i])
}
