package sbsong

import (
	"errors"
	"fmt"
)

// DiagnosticEntry は読み込み 1 回分の記録です
type DiagnosticEntry struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// String は "name: value" 形式で返します
func (e DiagnosticEntry) String() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Value)
}

// Trace は DiagnosticEntry を追記していくだけのリストです
type Trace struct {
	entries []DiagnosticEntry
}

// Append はエントリを追加します
func (t *Trace) Append(name string, value any) {
	t.entries = append(t.entries, DiagnosticEntry{Name: name, Value: value})
}

// Len はエントリ数を返します
func (t *Trace) Len() int {
	return len(t.entries)
}

// Entries はすべてのエントリを返します
func (t *Trace) Entries() []DiagnosticEntry {
	out := make([]DiagnosticEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Tail は最後の n 件を返します。n が 0 以下ならすべて返します。
func (t *Trace) Tail(n int) []DiagnosticEntry {
	if n <= 0 || n >= len(t.entries) {
		return t.Entries()
	}
	out := make([]DiagnosticEntry, n)
	copy(out, t.entries[len(t.entries)-n:])
	return out
}

// Recorder は PrimitiveReader をラップし、成功した読み込みをすべて Trace に記録します。
// 戻り値や制御の流れは変えません。
type Recorder struct {
	inner PrimitiveReader
	trace *Trace
}

// NewRecorder は新しい Recorder を作成します
func NewRecorder(inner PrimitiveReader, trace *Trace) *Recorder {
	return &Recorder{inner: inner, trace: trace}
}

// Byte は 1 バイトを読み込んで記録します
func (r *Recorder) Byte() (byte, error) {
	b, err := r.inner.Byte()
	if err == nil {
		r.trace.Append("byte", formatByte(b))
	}
	return b, err
}

// Int はビッグエンディアンの整数を読み込んで記録します
func (r *Recorder) Int() (uint32, error) {
	v, err := r.inner.Int()
	switch {
	case err == nil:
		r.trace.Append("int", formatInt(v))
	case errors.Is(err, ErrEndOfStream):
		r.trace.Append("int", EndMarker{}.String())
	}
	return v, err
}

// IntLE はリトルエンディアンの整数を読み込んで記録します
func (r *Recorder) IntLE() (uint32, error) {
	v, err := r.inner.IntLE()
	if err == nil {
		r.trace.Append("int_le", formatInt(v))
	}
	return v, err
}

// String は n バイトの文字列を読み込んで記録します
func (r *Recorder) String(n int) (string, error) {
	s, err := r.inner.String(n)
	if err == nil {
		r.trace.Append("string", s)
	}
	return s, err
}

// ByteString は 1 バイト長の文字列を読み込んで記録します
func (r *Recorder) ByteString() (string, error) {
	s, err := r.inner.ByteString()
	if err == nil {
		r.trace.Append("b_string", s)
	}
	return s, err
}

// PaddedString は 4 バイト長の文字列を読み込んで記録します
func (r *Recorder) PaddedString() (string, error) {
	s, err := r.inner.PaddedString()
	if err == nil {
		r.trace.Append("b_3_string", s)
	}
	return s, err
}

// Tag はタグを読み込んで記録します
func (r *Recorder) Tag() (Tag, error) {
	t, err := r.inner.Tag()
	if err == nil {
		r.trace.Append("tag", []string{formatByte(byte(t.Type)), formatInt(t.Length), formatInt(t.Flags)})
	}
	return t, err
}

// Seek は読み込み位置を移動して記録します
func (r *Recorder) Seek(delta int) error {
	err := r.inner.Seek(delta)
	if err == nil {
		r.trace.Append("seek", delta)
	}
	return err
}

func formatByte(b byte) string {
	return fmt.Sprintf("%02x (%d)", b, b)
}

func formatInt(v uint32) string {
	return fmt.Sprintf("%08x (%d)", v, v)
}
