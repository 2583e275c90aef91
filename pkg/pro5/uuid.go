package pro5

import (
	"io"
	"strings"

	"github.com/google/uuid"
)

// UUIDSource は UUID 文字列を生成するインターフェースです
type UUIDSource interface {
	New() string
}

// RandomUUIDs はランダムな UUID を大文字で返します。
// Rand を指定すると、そこから読んだバイト列で UUID を作ります。
type RandomUUIDs struct {
	Rand io.Reader
}

// New は新しい UUID を返します
func (g RandomUUIDs) New() string {
	if g.Rand != nil {
		if id, err := uuid.NewRandomFromReader(g.Rand); err == nil {
			return strings.ToUpper(id.String())
		}
	}
	return strings.ToUpper(uuid.NewString())
}

// VerseUUIDs は曲パート名と UUID の対応表です。
// 初めて参照された名前にだけ UUID を割り当てるので、1 回の出力の中では同じ名前は常に同じ UUID になります。
type VerseUUIDs struct {
	src UUIDSource
	ids map[string]string
}

// NewVerseUUIDs は新しい VerseUUIDs を作成します
func NewVerseUUIDs(src UUIDSource) *VerseUUIDs {
	return &VerseUUIDs{src: src, ids: make(map[string]string)}
}

// Get は name の UUID を返し、未割り当てなら割り当てます
func (v *VerseUUIDs) Get(name string) string {
	if id, ok := v.ids[name]; ok {
		return id
	}
	id := v.src.New()
	v.ids[name] = id
	return id
}

// Lookup は割り当て済みの UUID を返します
func (v *VerseUUIDs) Lookup(name string) (string, bool) {
	id, ok := v.ids[name]
	return id, ok
}
