package sbsong

import (
	"errors"
	"fmt"
)

const (
	// DefaultPeekLength は停止時に表示する生データのバイト数です
	DefaultPeekLength = 100

	// DefaultTraceWindow は停止時に残す読み込み記録の件数です
	DefaultTraceWindow = 10
)

// Options はデコーダの設定です
type Options struct {
	// PeekLength は停止時のスナップショットに含めるバイト数（0 以下なら DefaultPeekLength）
	PeekLength int
	// Verbose が true の場合、読み込み記録をすべて残します
	Verbose bool
}

// Snapshot は読み込みが止まった位置の情報です
type Snapshot struct {
	Pos  int    `yaml:"pos"`
	Size int    `yaml:"size"`
	Err  string `yaml:"error,omitempty"`
	Peek string `yaml:"peek"`
}

// String はスナップショットを 1 行で返します
func (s Snapshot) String() string {
	if s.Err != "" {
		return fmt.Sprintf("pos=%d size=%d error=%s peek=%s", s.Pos, s.Size, s.Err, s.Peek)
	}
	return fmt.Sprintf("pos=%d size=%d peek=%s", s.Pos, s.Size, s.Peek)
}

// Result はデコード結果です。
// Complete が false の場合、Records は途中までの結果で Diagnostics に停止時の情報が入ります。
type Result struct {
	Records     []Record
	Trailer     []byte
	Complete    bool
	Diagnostics []DiagnosticEntry
	Err         error
}

// Stalled は途中で読み込みが止まったか返します
func (r *Result) Stalled() bool {
	return !r.Complete
}

// Decoder はタグ列を読み込んで Record に変換します
type Decoder struct {
	cur   *Cursor
	r     PrimitiveReader
	trace *Trace
	opts  Options
}

// NewDecoder は新しい Decoder を作成します
func NewDecoder(data []byte, opts Options) *Decoder {
	cur := NewCursor(data)
	trace := &Trace{}
	return &Decoder{
		cur:   cur,
		r:     NewRecorder(NewReader(cur), trace),
		trace: trace,
		opts:  opts,
	}
}

// Decode はデフォルト設定でデータをデコードします
func Decode(data []byte) *Result {
	return NewDecoder(data, Options{}).Decode()
}

// DecodeWithOptions は設定を指定してデータをデコードします
func DecodeWithOptions(data []byte, opts Options) *Result {
	return NewDecoder(data, opts).Decode()
}

// Decode はデータをデコードします。
// 読み込みエラーはここで捕捉し、途中までの Records と診断情報として返します。
func (d *Decoder) Decode() *Result {
	res := &Result{}
	complete, err := d.run(res)
	if complete {
		res.Complete = true
		return res
	}
	d.snapshot(err)
	res.Err = err
	res.Diagnostics = d.window()
	return res
}

// run はレコードを読み続け、正常に終端へ達したら true を返します
func (d *Decoder) run(res *Result) (bool, error) {
	for {
		tag, err := d.r.Tag()
		if err != nil {
			return false, err
		}
		rec := Record{Type: tag.Type, Remainder: int64(tag.Length)}

		switch {
		case tag.Type == typeByteValue && tag.Flags == flagsShortString:
			b, err := d.r.Byte()
			if err != nil {
				return false, err
			}
			rec.Values = append(rec.Values, b)

		case tag.isString():
			s, err := d.r.ByteString()
			if err != nil {
				return false, err
			}
			rec.Values = append(rec.Values, s)
			rec.Remainder -= int64(len(s)) + stringOverhead

		case tag.Flags == flagsPaddedString:
			s, err := d.r.PaddedString()
			if err != nil {
				return false, err
			}
			rec.Values = append(rec.Values, s)
			rec.Remainder -= int64(len(s)) + paddedStringOverhead

		case tag.Length == 1 && tag.Flags == flagsEmpty:
			// 値なし

		case tag.isTerminator():
			// 終端マーカーが読めればファイルの最後まで到達している
			_, err := d.r.Int()
			if errors.Is(err, ErrEndOfStream) {
				return true, nil
			}
			if err != nil {
				return false, err
			}

		case tag.Type == typeOpaqueTail:
			return true, nil

		default:
			if tag.Type == typeShifted {
				// タグが次のレコードのものだった（おそらく）
				if err := d.r.Seek(-shiftedRewind); err != nil {
					return false, err
				}
			}
			return false, nil
		}

		if isFinalField(tag, rec) {
			res.Records = append(res.Records, rec)
			res.Trailer = d.cur.Rest()
			return true, nil
		}

		if tag.Type == FieldSongPart {
			ok, err := d.readSongPart(tag, &rec)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}

		res.Records = append(res.Records, rec)
	}
}

// readSongPart は曲パートの本文を読み込みます。サブフラグが不明な場合は false を返します。
func (d *Decoder) readSongPart(tag Tag, rec *Record) (bool, error) {
	sub, err := d.r.Byte()
	if err != nil {
		return false, err
	}
	rec.Values = append(rec.Values, sub)

	var v any
	switch sub {
	case subFlagsString:
		if tag.Flags == flagsWidePart {
			v, err = d.r.PaddedString()
		} else {
			v, err = d.r.ByteString()
		}
	case subFlagsPaddedString, subFlagsAltString:
		v, err = d.r.PaddedString()
	case subFlagsInt:
		n, intErr := d.r.Int()
		switch {
		case errors.Is(intErr, ErrEndOfStream):
			v = EndMarker{}
		case intErr != nil:
			err = intErr
		default:
			v = n
		}
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	rec.Values = append(rec.Values, v)
	return true, nil
}

// snapshot は停止位置の情報を Trace に追加します
func (d *Decoder) snapshot(err error) {
	n := d.opts.PeekLength
	if n <= 0 {
		n = DefaultPeekLength
	}
	snap := Snapshot{
		Pos:  d.cur.Pos(),
		Size: d.cur.Len(),
		Peek: fmt.Sprintf("%q", d.cur.Peek(n)),
	}
	if err != nil {
		snap.Err = err.Error()
	}
	d.trace.Append("snapshot", snap)
}

func (d *Decoder) window() []DiagnosticEntry {
	if d.opts.Verbose {
		return d.trace.Entries()
	}
	return d.trace.Tail(DefaultTraceWindow)
}

func (t Tag) isTerminator() bool {
	return t.Length == 5 && t.Flags == flagsTerminator
}

// isFinalField はファイル最後のフィールドか判定します
func isFinalField(tag Tag, rec Record) bool {
	if tag.Type == typeFinalField {
		return true
	}
	return tag.Type == typeLastField && (len(rec.Values) == 1 || tag.isTerminator())
}
