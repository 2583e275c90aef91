package sbsong

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// PrimitiveReader は .sbsong で使われる基本的な値を読み込むインターフェースです
type PrimitiveReader interface {
	// Byte は 1 バイトを読み込みます
	Byte() (byte, error)

	// Int はビッグエンディアンの 32 ビット整数を読み込みます。
	// 残りがちょうど 3 バイトの場合は ErrEndOfStream を返します。
	Int() (uint32, error)

	// IntLE はリトルエンディアンの 32 ビット整数を読み込みます
	IntLE() (uint32, error)

	// String は n バイトの文字列を読み込みます
	String(n int) (string, error)

	// ByteString は 1 バイト長が前置された文字列を読み込みます
	ByteString() (string, error)

	// PaddedString は 4 バイト長（リトルエンディアン）が前置された文字列を読み込みます。
	// 長さが残りバイト数を超える場合は 4 バイト戻って ByteString として読み直します。
	PaddedString() (string, error)

	// Tag は (type, length, flags) を読み込みます
	Tag() (Tag, error)

	// Seek は読み込み位置を delta バイト移動します
	Seek(delta int) error
}

// Reader は Cursor の上に PrimitiveReader を実装します
type Reader struct {
	cur *Cursor
}

// NewReader は新しい Reader を作成します
func NewReader(cur *Cursor) *Reader {
	return &Reader{cur: cur}
}

// Byte は 1 バイトを読み込みます
func (r *Reader) Byte() (byte, error) {
	b, err := r.cur.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int はビッグエンディアンの 32 ビット整数を読み込みます
func (r *Reader) Int() (uint32, error) {
	if r.cur.Remaining() == 3 {
		return 0, ErrEndOfStream
	}
	b, err := r.cur.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// IntLE はリトルエンディアンの 32 ビット整数を読み込みます
func (r *Reader) IntLE() (uint32, error) {
	b, err := r.cur.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// String は n バイトの文字列を読み込みます
func (r *Reader) String(n int) (string, error) {
	b, err := r.cur.Read(n)
	if err != nil {
		return "", err
	}
	return decodeText(b), nil
}

// ByteString は 1 バイト長が前置された文字列を読み込みます
func (r *Reader) ByteString() (string, error) {
	n, err := r.Byte()
	if err != nil {
		return "", err
	}
	return r.String(int(n))
}

// PaddedString は 4 バイト長が前置された文字列を読み込みます
func (r *Reader) PaddedString() (string, error) {
	n, err := r.IntLE()
	if err != nil {
		return "", err
	}
	if int64(n) > int64(r.cur.Remaining()) {
		// 長さを読み違えている（1 バイト長の形式だった）と判断して読み直す
		if err := r.cur.Seek(-4); err != nil {
			return "", err
		}
		s, err := r.ByteString()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedLength, err)
		}
		return s, nil
	}
	orig := r.cur.Pos()
	s, err := r.String(int(n))
	if err != nil {
		if seekErr := r.cur.SetPos(orig); seekErr != nil {
			return "", errors.Join(err, seekErr)
		}
		return "", err
	}
	return s, nil
}

// Tag は (type, length, flags) を読み込みます
func (r *Reader) Tag() (Tag, error) {
	t, err := r.Byte()
	if err != nil {
		return Tag{}, err
	}
	length, err := r.Int()
	if err != nil {
		return Tag{}, err
	}
	flags, err := r.Int()
	if err != nil {
		return Tag{}, err
	}
	return Tag{Type: FieldType(t), Length: length, Flags: flags}, nil
}

// Seek は読み込み位置を delta バイト移動します
func (r *Reader) Seek(delta int) error {
	return r.cur.Seek(delta)
}

// decodeText は UTF-8 として不正なバイト列を Windows-1252 として変換します
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// stringify はペイロードの値を文字列に変換します
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
