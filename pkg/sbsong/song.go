package sbsong

import (
	"github.com/elliotchance/orderedmap/v3"
)

// Song は .sbsong から組み立てた曲です
type Song struct {
	Title         string
	Artist        string
	Copyright     string
	LicenseNumber string
	Version       string
	Keywords      []string
	// Parts は曲パート名から歌詞への対応で、出現順を保持します
	Parts *orderedmap.OrderedMap[string, string]
	// Order は再生順です。Parts に存在しない名前を含むことがあります。
	Order []string
}

// NewSong は空の Song を作成します
func NewSong() *Song {
	return &Song{
		Keywords: []string{},
		Parts:    orderedmap.NewOrderedMap[string, string](),
		Order:    []string{},
	}
}

// Interpret は Record 列を先頭から 1 回だけ走査して Song を組み立てます。
// 同じ名前の曲パートが 2 回現れた場合は *DuplicateSectionError を返します。
func Interpret(records []Record) (*Song, error) {
	song := NewSong()
	for _, rec := range records {
		switch rec.Type {
		case FieldSongPart:
			name := rec.StringAt(0)
			if song.Parts.Has(name) {
				return nil, &DuplicateSectionError{Name: name}
			}
			song.Parts.Set(name, rec.StringAt(2))
		case FieldOrder:
			song.Order = append(song.Order, rec.StringAt(0))
		case FieldKeyword:
			song.Keywords = append(song.Keywords, rec.StringAt(0))
		case FieldTitle:
			song.Title = rec.StringAt(0)
		case FieldArtist:
			song.Artist = rec.StringAt(0)
		case FieldCopyright:
			song.Copyright = rec.StringAt(0)
		case FieldLicenseNumber:
			song.LicenseNumber = rec.StringAt(0)
		case FieldVersion:
			song.Version = rec.StringAt(0)
		}
	}
	return song, nil
}
