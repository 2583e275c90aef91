// Package interfaces はsbsong2pro5コマンドで使用するインターフェースを定義します
package interfaces

import (
	"io"

	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/models"
	"github.com/shiroemons/go-sbsong/pkg/pro5"
	"github.com/shiroemons/go-sbsong/pkg/sbsong"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	Remove(filename string) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// Validator は出力した XML を検査するインターフェース
type Validator interface {
	Validate(r io.Reader) error
}

// Renderer は曲を .pro5 に書き出すインターフェース
type Renderer interface {
	Render(w io.Writer, song *sbsong.Song) (*pro5.Report, error)
}

// Reporter は処理結果を出力するインターフェース
type Reporter interface {
	Raw(path string, res *sbsong.Result) error
	Converted(result *models.Result)
	Removed(path string)
	Preview(output string, document []byte) error
	Failed(path string, err error)
	Summary(summary *models.Summary)
}

// UUIDSource は UUID 文字列を生成するインターフェース
type UUIDSource = pro5.UUIDSource

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
