// Package pro5 は曲をプレゼンテーションソフトの .pro5 (XML) 形式で出力します。
//
// 曲パートごとにスライドグループを 1 つ作り、その中に RTF の本文を base64 で
// 埋め込んだテキストスライドを 1 枚置きます。並び順はアレンジメントとして
// 出力し、存在しない曲パートへの参照は警告を出して読み飛ばします。
package pro5

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shiroemons/go-sbsong/pkg/sbsong"
)

// TimeFormat は lastDateUsed の書式です
const TimeFormat = "2006-01-02T15:04:05"

// StandardSlides は曲パートの後ろに追加する標準スライドです
var StandardSlides = []string{"title slide", "blank slide"}

// Logger は警告の出力先です
type Logger interface {
	Printf(format string, a ...any)
}

// Options は Renderer の設定です
type Options struct {
	UUIDs  UUIDSource
	Now    func() time.Time
	Logger Logger
}

// Report は 1 回の出力の結果です
type Report struct {
	Groups     int
	Arranged   int
	Unresolved []string
}

// Renderer は Song を .pro5 に変換します
type Renderer struct {
	uuids  UUIDSource
	now    func() time.Time
	logger Logger
}

// NewRenderer は新しい Renderer を作成します
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{uuids: opts.UUIDs, now: opts.Now, logger: opts.Logger}
	if r.uuids == nil {
		r.uuids = RandomUUIDs{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Render は song を XML として w に書き込みます
func (r *Renderer) Render(w io.Writer, song *sbsong.Song) (*Report, error) {
	if song == nil {
		return nil, ErrNilSong
	}
	year, publisher := SplitCopyright(song.Copyright)
	verses := NewVerseUUIDs(r.uuids)
	report := &Report{}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteDocument, err)
	}
	doc := newDocWriter(w)
	doc.start("RVPresentationDocument",
		attr("height", "768"),
		attr("width", "1024"),
		attr("versionNumber", "500"),
		attr("docType", "0"),
		attr("creatorCode", "1349676880"),
		attr("lastDateUsed", r.now().Format(TimeFormat)),
		attr("usedCount", "0"),
		attr("category", "Song"),
		attr("resourcesDirectory", ""),
		attr("backgroundColors", "0 0 0 1"),
		attr("drawingBackgroundColor", "0"),
		attr("notes", strings.Join(song.Keywords, " ")),
		attr("artist", song.Artist),
		attr("author", song.Artist),
		attr("album", ""),
		attr("CCLIDisplay", "1"),
		attr("CCLIArtistCredits", ""),
		attr("CCLISongTitle", song.Title),
		attr("CCLIPublisher", publisher),
		attr("CCLICopyrightInfo", year),
		attr("CCLILicenseNumber", song.LicenseNumber),
		attr("chordChartPath", ""),
	)
	doc.transition("0")
	r.renderGroups(doc, song, verses, report)
	r.renderArrangement(doc, song, verses, report)
	doc.end("RVPresentationDocument")

	if err := doc.flush(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteDocument, err)
	}
	return report, nil
}

// renderGroups は曲パートと標準スライドのグループを出力します
func (r *Renderer) renderGroups(doc *docWriter, song *sbsong.Song, verses *VerseUUIDs, report *Report) {
	doc.start("groups", attr("containerClass", "NSMutableArray"))
	i := 0
	for name, lyrics := range song.Parts.AllFromFront() {
		r.renderGroup(doc, name, lyrics, i, verses.Get(name))
		i++
	}
	for _, name := range StandardSlides {
		r.renderGroup(doc, name, "", i, verses.Get(name))
		i++
	}
	report.Groups = i
	doc.end("groups")
}

func (r *Renderer) renderGroup(doc *docWriter, name, lyrics string, index int, id string) {
	doc.start("RVSlideGrouping",
		attr("name", name),
		attr("uuid", id),
		attr("color", "0 0 1 1"),
		attr("serialization-array-index", strconv.Itoa(index)),
	)
	doc.start("slides", attr("containerClass", "NSMutableArray"))
	doc.start("RVDisplaySlide",
		attr("backgroundColor", "0 0 0 1"),
		attr("enabled", "1"),
		attr("highlightColor", "0 0 0 0"),
		attr("hotKey", ""),
		attr("label", ""),
		attr("notes", ""),
		attr("slideType", "1"),
		attr("sort_index", "1"),
		attr("UUID", r.uuids.New()),
		attr("drawingBackgroundColor", "0"),
		attr("chordChartPath", ""),
		attr("serialization-array-index", "0"),
	)
	doc.empty("cues", attr("containerClass", "NSMutableArray"))
	doc.start("displayElements", attr("containerClass", "NSMutableArray"))
	renderTextElement(doc, lyrics)
	doc.end("displayElements")
	doc.transition("-1")
	doc.end("RVDisplaySlide")
	doc.end("slides")
	doc.end("RVSlideGrouping")
}

func renderTextElement(doc *docWriter, lyrics string) {
	doc.start("RVTextElement",
		attr("displayDelay", "0"),
		attr("displayName", "Default"),
		attr("locked", "0"),
		attr("persistent", "0"),
		attr("typeID", "0"),
		attr("fromTemplate", "1"),
		attr("bezelRadius", "0"),
		attr("drawingFill", "0"),
		attr("drawingShadow", "1"),
		attr("drawingStroke", "0"),
		attr("fillColor", "0 0 0 0"),
		attr("rotation", "0"),
		attr("source", ""),
		attr("adjustsHeightToFit", "0"),
		attr("verticalAlignment", "0"),
		attr("RTFData", EncodeRTF(lyrics)),
		attr("revealType", "0"),
		attr("serialization-array-index", "0"),
	)
	doc.empty("_-RVRect3D-_position",
		attr("x", "30"),
		attr("y", "30"),
		attr("z", "0"),
		attr("width", "964"),
		attr("height", "708"),
	)
	doc.start("_-D-_serializedShadow", attr("containerClass", "NSMutableDictionary"))
	doc.empty("NSMutableString", attr("serialization-native-value", "{2.8284299, -2.8284299}"), attr("serialization-dictionary-key", "shadowOffset"))
	doc.empty("NSNumber", attr("serialization-native-value", "4"), attr("serialization-dictionary-key", "shadowBlurRadius"))
	doc.empty("NSColor", attr("serialization-native-value", "0 0 0 1"), attr("serialization-dictionary-key", "shadowColor"))
	doc.end("_-D-_serializedShadow")
	doc.start("stroke", attr("containerClass", "NSMutableDictionary"))
	doc.empty("NSColor", attr("serialization-native-value", "0 0 0 0"), attr("serialization-dictionary-key", "RVShapeElementStrokeColorKey"))
	doc.empty("NSNumber", attr("serialization-native-value", "0"), attr("serialization-dictionary-key", "RVShapeElementStrokeWidthKey"))
	doc.end("stroke")
	doc.end("RVTextElement")
}

// renderArrangement は並び順を出力します。見つからない曲パートは警告を出して飛ばします。
func (r *Renderer) renderArrangement(doc *docWriter, song *sbsong.Song, verses *VerseUUIDs, report *Report) {
	doc.start("arrangements", attr("containerClass", "NSMutableArray"))
	doc.start("RVSongArrangement",
		attr("name", "typical"),
		attr("uuid", r.uuids.New()),
		attr("color", "0 0 0 0"),
		attr("serialization-array-index", "0"),
	)
	doc.start("groupIDs", attr("containerClass", "NSMutableArray"))
	i := 0
	for _, name := range song.Order {
		id, ok := verses.Lookup(name)
		if !ok {
			report.Unresolved = append(report.Unresolved, name)
			if r.logger != nil {
				r.logger.Printf("警告: %v: %q\n", ErrUnresolvedOrderReference, name)
			}
			continue
		}
		doc.empty("NSMutableString", attr("serialization-native-value", id), attr("serialization-array-index", strconv.Itoa(i)))
		i++
	}
	report.Arranged = i
	doc.end("groupIDs")
	doc.end("RVSongArrangement")
	doc.end("arrangements")
}

// docWriter は xml.Encoder への書き込みで最初に起きたエラーを保持します
type docWriter struct {
	enc *xml.Encoder
	err error
}

func newDocWriter(w io.Writer) *docWriter {
	return &docWriter{enc: xml.NewEncoder(w)}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (d *docWriter) start(name string, attrs ...xml.Attr) {
	if d.err != nil {
		return
	}
	d.err = d.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (d *docWriter) end(name string) {
	if d.err != nil {
		return
	}
	d.err = d.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (d *docWriter) empty(name string, attrs ...xml.Attr) {
	d.start(name, attrs...)
	d.end(name)
}

// transition は遷移効果の設定を出力します
func (d *docWriter) transition(transitionType string) {
	d.empty("_-RVProTransitionObject-_transitionObject",
		attr("transitionType", transitionType),
		attr("transitionDuration", "1"),
		attr("motionEnabled", "0"),
		attr("motionDuration", "20"),
		attr("motionSpeed", "100"),
	)
}

func (d *docWriter) flush() error {
	if d.err != nil {
		return d.err
	}
	return d.enc.Flush()
}
