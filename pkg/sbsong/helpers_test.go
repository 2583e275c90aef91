package sbsong

import (
	"bytes"
	"encoding/binary"
)

// songBuilder はテスト用の .sbsong バイト列を組み立てます
type songBuilder struct {
	buf bytes.Buffer
}

func newSongBuilder() *songBuilder {
	return &songBuilder{}
}

func (b *songBuilder) tag(t byte, length, flags uint32) *songBuilder {
	b.buf.WriteByte(t)
	b.int(length)
	b.int(flags)
	return b
}

func (b *songBuilder) int(v uint32) *songBuilder {
	var p [4]byte
	binary.BigEndian.PutUint32(p[:], v)
	b.buf.Write(p[:])
	return b
}

func (b *songBuilder) raw(p ...byte) *songBuilder {
	b.buf.Write(p)
	return b
}

func (b *songBuilder) byteString(s string) *songBuilder {
	b.buf.WriteByte(byte(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *songBuilder) paddedString(s string) *songBuilder {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], uint32(len(s)))
	b.buf.Write(p[:])
	b.buf.WriteString(s)
	return b
}

// field は 1 バイト長の文字列フィールドを追加します
func (b *songBuilder) field(t FieldType, s string) *songBuilder {
	return b.tag(byte(t), uint32(len(s)+stringOverhead), flagsString).byteString(s)
}

// songPart は曲パートを追加します
func (b *songBuilder) songPart(name, content string) *songBuilder {
	b.tag(byte(FieldSongPart), uint32(len(name)+len(content)+4), flagsString).byteString(name)
	return b.raw(subFlagsString).byteString(content)
}

// end は終端タグと 3 バイトの終端マーカーを追加します
func (b *songBuilder) end() *songBuilder {
	return b.tag(11, 5, flagsTerminator).raw(0, 0, 0)
}

func (b *songBuilder) bytes() []byte {
	return b.buf.Bytes()
}
