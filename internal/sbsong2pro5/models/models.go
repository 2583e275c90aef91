// Package models はsbsong2pro5コマンドで使用するデータモデルを定義します
package models

// Status は 1 ファイルの処理結果の種類です
type Status int

const (
	StatusConverted Status = iota // .pro5 を書き出した
	StatusPreviewed               // 標準出力に表示した
	StatusDumped                  // 生データを出力した
	StatusIncomplete              // 読み込みが途中で止まった
	StatusFailed                  // エラーで中断した
)

// String は状態名を返します
func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusPreviewed:
		return "previewed"
	case StatusDumped:
		return "dumped"
	case StatusIncomplete:
		return "incomplete"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result は 1 ファイルの処理結果を表します
type Result struct {
	Input      string
	Output     string
	Status     Status
	ValidXML   bool
	Removed    bool
	Unresolved []string // 並び順で見つからなかった曲パート
	Err        error
}

// Summary はバッチ全体の集計です
type Summary struct {
	Results    []*Result
	InvalidXML int
}

// Add は結果を追加します
func (s *Summary) Add(r *Result) {
	s.Results = append(s.Results, r)
	if r.Status == StatusConverted && !r.ValidXML {
		s.InvalidXML++
	}
}

// Count は status の件数を返します
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed は失敗したファイルがあるか返します
func (s *Summary) Failed() bool {
	return s.Count(StatusFailed) > 0
}
