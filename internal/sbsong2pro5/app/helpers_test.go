package app

import (
	"bytes"
	"encoding/binary"
)

// sbsongData はテスト用の .sbsong バイト列を組み立てます
type sbsongData struct {
	buf bytes.Buffer
}

func (d *sbsongData) tag(t byte, length, flags uint32) *sbsongData {
	var p [4]byte
	d.buf.WriteByte(t)
	binary.BigEndian.PutUint32(p[:], length)
	d.buf.Write(p[:])
	binary.BigEndian.PutUint32(p[:], flags)
	d.buf.Write(p[:])
	return d
}

func (d *sbsongData) str(s string) *sbsongData {
	d.buf.WriteByte(byte(len(s)))
	d.buf.WriteString(s)
	return d
}

func (d *sbsongData) field(t byte, s string) *sbsongData {
	return d.tag(t, uint32(len(s)+2), 6).str(s)
}

func (d *sbsongData) part(name, lyrics string) *sbsongData {
	d.tag(37, uint32(len(name)+len(lyrics)+4), 6).str(name)
	d.buf.WriteByte(6)
	return d.str(lyrics)
}

// end は終端マーカーを追加します
func (d *sbsongData) end() []byte {
	d.tag(11, 5, 18)
	d.buf.Write([]byte{0, 0, 0})
	return d.buf.Bytes()
}

// goodSong は最後まで読み込める曲です
func goodSong() []byte {
	d := &sbsongData{}
	return d.field(1, "Test Song").
		field(2, "Someone").
		field(3, "2001 Worship Co").
		part("Verse 1", "Line one\r\nLine two").
		part("Chorus", "Sing").
		field(31, "Verse 1").
		field(31, "Missing").
		field(31, "Chorus").
		end()
}

// duplicateSong は同じ曲パートを 2 回含みます
func duplicateSong() []byte {
	d := &sbsongData{}
	return d.part("Verse", "a").part("Verse", "b").end()
}

// stalledSong は未知のタグで読み込みが止まります
func stalledSong() []byte {
	d := &sbsongData{}
	d.field(1, "Broken")
	d.tag(99, 0, 0)
	return d.buf.Bytes()
}
