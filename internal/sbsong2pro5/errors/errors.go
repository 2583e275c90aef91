// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrIncompleteDecode は .sbsong を最後まで読み込めなかった場合のエラー
	ErrIncompleteDecode = errors.New("曲データを最後まで読み込めませんでした")

	// ErrInvalidXML は出力した XML が整形式でない場合のエラー
	ErrInvalidXML = errors.New("出力したXMLが不正です")
)

// FileError は入力ファイルごとのエラー
type FileError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *FileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError は新しいFileErrorを作成します
func NewFileError(op, path string, err error) *FileError {
	return &FileError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// RenderError は .pro5 出力関連のエラー
type RenderError struct {
	Output string // 出力先
	Err    error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *RenderError) Error() string {
	return fmt.Sprintf("%sの出力エラー: %v", e.Output, e.Err)
}

// Unwrap は元のエラーを返します
func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError は新しいRenderErrorを作成します
func NewRenderError(output string, err error) *RenderError {
	return &RenderError{
		Output: output,
		Err:    err,
	}
}

// Chain は err から Unwrap で辿れるエラーを外側から順に最大 n 個返します
func Chain(err error, n int) []error {
	var chain []error
	for err != nil && len(chain) < n {
		chain = append(chain, err)
		err = errors.Unwrap(err)
	}
	return chain
}
