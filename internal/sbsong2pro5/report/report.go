// Package report は処理結果を標準出力に書き出します
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	sberrors "github.com/shiroemons/go-sbsong/internal/sbsong2pro5/errors"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/models"
	"github.com/shiroemons/go-sbsong/pkg/sbsong"
)

// ErrorContextLines は失敗時に表示するエラーの段数です
const ErrorContextLines = 5

// Reporter は処理結果を出力します
type Reporter struct {
	out io.Writer
}

// NewReporter は標準出力に書き込むReporterを作成します
func NewReporter() *Reporter {
	return &Reporter{out: os.Stdout}
}

// NewReporterTo は出力先を指定してReporterを作成します
func NewReporterTo(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Raw はデコード結果を "<path>: ..." の YAML で出力します。
// 最後まで読み込めた場合は Record の一覧、途中で止まった場合は読み込みの記録を出力します。
func (r *Reporter) Raw(path string, res *sbsong.Result) error {
	data, err := yaml.Marshal(map[string]any{path: RawDocument(res)})
	if err != nil {
		return fmt.Errorf("YAMLの生成に失敗しました: %w", err)
	}
	_, err = r.out.Write(data)
	return err
}

// RawDocument はデコード結果を YAML 用の値にします。
// 最後のフィールドの後ろに残ったバイト列は、引用符付きの文字列として末尾に追加します。
func RawDocument(res *sbsong.Result) any {
	if res.Stalled() {
		entries := make([]map[string]any, len(res.Diagnostics))
		for i, e := range res.Diagnostics {
			entries[i] = map[string]any{e.Name: rawValue(e.Value)}
		}
		return entries
	}
	records := make([]any, 0, len(res.Records)+1)
	for _, rec := range res.Records {
		row := []any{rec.Label()}
		for _, v := range rec.Values {
			row = append(row, rawValue(v))
		}
		records = append(records, row)
	}
	if len(res.Trailer) > 0 {
		records = append(records, rawValue(res.Trailer))
	}
	return records
}

func rawValue(v any) any {
	switch v := v.(type) {
	case sbsong.EndMarker:
		return v.String()
	case []byte:
		return fmt.Sprintf("%q", v)
	}
	return v
}

// Converted は "<input> => <output>" を出力します。
// 並び順で見つからなかった曲パートがあれば行末に併記します。
func (r *Reporter) Converted(result *models.Result) {
	if len(result.Unresolved) > 0 {
		fmt.Fprintf(r.out, "%s => %s (missing: %s)\n", result.Input, result.Output, strings.Join(result.Unresolved, ", "))
		return
	}
	fmt.Fprintf(r.out, "%s => %s\n", result.Input, result.Output)
}

// Removed は読み込みに成功して削除した入力を出力します
func (r *Reporter) Removed(path string) {
	fmt.Fprintf(r.out, "%s removed\n", path)
}

// Preview は出力先の見出しに続けて文書を出力します
func (r *Reporter) Preview(output string, document []byte) error {
	fmt.Fprintf(r.out, "%s will be:\n", output)
	_, err := r.out.Write(document)
	return err
}

// Failed は "<path>: <error>" と、包まれたエラーを最大 ErrorContextLines 段出力します
func (r *Reporter) Failed(path string, err error) {
	fmt.Fprintf(r.out, "%s: %v\n", path, err)
	chain := sberrors.Chain(err, ErrorContextLines+1)
	for i := 1; i < len(chain); i++ {
		fmt.Fprintf(r.out, "\t%v\n", chain[i])
	}
}

// Summary は不正な XML の件数を出力します
func (r *Reporter) Summary(summary *models.Summary) {
	if summary.InvalidXML > 0 {
		fmt.Fprintf(r.out, "%d files were produced with invalid XML!\n", summary.InvalidXML)
	}
}
