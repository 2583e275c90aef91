// Package xmlcheck は出力した .pro5 が整形式の XML か検査します
package xmlcheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/xsd/pkg/xmlstream"
	"github.com/jacoelho/xsd/pkg/xmltext"
)

var (
	// ErrMalformed は整形式でない場合のエラー
	ErrMalformed = errors.New("XMLが整形式ではありません")
)

// Validator は XML 文書を最後まで読み込んで構文を検査します
type Validator struct {
	opts []xmlstream.Option
}

// NewValidator は新しいValidatorを作成します
func NewValidator() *Validator {
	return &Validator{opts: []xmlstream.Option{xmltext.Strict(true)}}
}

// Validate は r を検査し、問題があれば ErrMalformed を包んだエラーを返します。
// ルート要素がない文書も整形式ではないものとして扱います。
func (v *Validator) Validate(r io.Reader) error {
	reader, err := xmlstream.NewReader(r, v.opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for {
		if _, err := reader.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}
}
