package sbsong

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEnd は残りバイト数を超えて読み込もうとした場合のエラー
	ErrUnexpectedEnd = errors.New("データの終端に達しました")

	// ErrEndOfStream は残り 3 バイトで整数を読もうとした場合に返されます。
	// io.EOF と同じく正常な終端を示すもので、エラーではありません。
	ErrEndOfStream = errors.New("ストリームの終端です")

	// ErrMalformedLength は 4 バイト長が不正で、1 バイト長での読み直しにも失敗した場合のエラー
	ErrMalformedLength = errors.New("文字列の長さフィールドが不正です")

	// ErrSeekOutOfRange はシーク先がデータの範囲外の場合のエラー
	ErrSeekOutOfRange = errors.New("シーク位置が範囲外です")

	// ErrDuplicateSection は同じ名前の曲パートが 2 回現れた場合のエラー
	ErrDuplicateSection = errors.New("曲パートが重複しています")
)

// UnexpectedEndError は読み込みが終端を超えた場合の詳細です
type UnexpectedEndError struct {
	Want int    // 読み込もうとしたバイト数
	Have int    // 残りのバイト数
	Rest []byte // 読まれずに残ったデータ
}

// Error はエラーメッセージを返します
func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("%d バイト読み込もうとしましたが、残りは %d バイトです (%q)", e.Want, e.Have, e.Rest)
}

// Is は ErrUnexpectedEnd との比較を可能にします
func (e *UnexpectedEndError) Is(target error) bool {
	return target == ErrUnexpectedEnd
}

// DuplicateSectionError は重複した曲パートの名前を保持します
type DuplicateSectionError struct {
	Name string
}

// Error はエラーメッセージを返します
func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateSection, e.Name)
}

// Is は ErrDuplicateSection との比較を可能にします
func (e *DuplicateSectionError) Is(target error) bool {
	return target == ErrDuplicateSection
}
