package sbsong

import "fmt"

// Cursor はメモリ上のバイト列と読み込み位置を保持します。
// ヒューリスティックが外れたときに巻き戻せるよう、任意の位置へシークできます。
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor は新しい Cursor を作成します
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos は現在の読み込み位置を返します
func (c *Cursor) Pos() int {
	return c.pos
}

// Len はデータ全体の長さを返します
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining は残りのバイト数を返します
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Read は n バイトを読み込みます。
// 残りが足りない場合は位置を動かさずに *UnexpectedEndError を返します。
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		rest := make([]byte, c.Remaining())
		copy(rest, c.data[c.pos:])
		return nil, &UnexpectedEndError{Want: n, Have: len(rest), Rest: rest}
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Seek は現在位置から delta バイト移動します
func (c *Cursor) Seek(delta int) error {
	return c.SetPos(c.pos + delta)
}

// SetPos は読み込み位置を pos に設定します
func (c *Cursor) SetPos(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("%w: %d (0..%d)", ErrSeekOutOfRange, pos, len(c.data))
	}
	c.pos = pos
	return nil
}

// Peek は位置を動かさずに最大 n バイトを返します
func (c *Cursor) Peek(n int) []byte {
	if n > c.Remaining() {
		n = c.Remaining()
	}
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, c.data[c.pos:c.pos+n])
	return out
}

// Rest は残りのデータをすべて読み込みます
func (c *Cursor) Rest() []byte {
	out := make([]byte, c.Remaining())
	copy(out, c.data[c.pos:])
	c.pos = len(c.data)
	return out
}
