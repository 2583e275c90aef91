// Package config はsbsong2pro5コマンドの設定管理を行います
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shiroemons/go-sbsong/pkg/sbsong"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	Inputs      []string
	OutputDir   string
	Raw         bool
	Preview     bool
	RemoveGood  bool
	DebugMode   bool
	PeekLength  int
	NoValidate  bool
	ShowVersion bool
}

// Getenv は環境変数の取得関数です
type Getenv func(key string) string

// Defaults は環境変数から既定値を作成します。
// RAW と PREVIEW は値があれば有効、RM_GOOD と DBG は "y" のときだけ有効です。
func Defaults(getenv Getenv) *Config {
	cfg := &Config{PeekLength: sbsong.DefaultPeekLength}
	if getenv == nil {
		return cfg
	}
	cfg.Raw = getenv("RAW") != ""
	cfg.Preview = getenv("PREVIEW") != ""
	cfg.RemoveGood = getenv("RM_GOOD") == "y"
	cfg.DebugMode = getenv("DBG") == "y"
	if n, err := strconv.Atoi(getenv("PEEK")); err == nil && n > 0 {
		cfg.PeekLength = n
	}
	return cfg
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	cfg, err := Parse(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		os.Exit(2)
	}
	return cfg
}

// Parse は fs に引数を登録して args を解析します
func Parse(fs *flag.FlagSet, args []string, getenv Getenv) (*Config, error) {
	config := Defaults(getenv)

	// カスタムUsage関数を設定（ダブルハイフン表示）
	fs.Usage = func() {
		usage(fs.Output(), fs.Name())
	}

	// 出力ディレクトリ
	fs.StringVar(&config.OutputDir, "output", "", "output directory for .pro5 files (default: next to each input)")
	fs.StringVar(&config.OutputDir, "o", "", "output directory for .pro5 files (shorthand)")

	// 生データ出力
	fs.BoolVar(&config.Raw, "raw", config.Raw, "dump decoded records as YAML instead of rendering")
	fs.BoolVar(&config.Raw, "r", config.Raw, "dump decoded records as YAML (shorthand)")

	// プレビュー
	fs.BoolVar(&config.Preview, "preview", config.Preview, "print the rendered document instead of writing it")
	fs.BoolVar(&config.Preview, "p", config.Preview, "print the rendered document (shorthand)")

	fs.BoolVar(&config.RemoveGood, "remove-good", config.RemoveGood, "delete inputs under _problems/ that decode completely")

	// デバッグモード
	fs.BoolVar(&config.DebugMode, "debug", config.DebugMode, "enable debug output and keep the whole read trace")
	fs.BoolVar(&config.DebugMode, "d", config.DebugMode, "enable debug output (shorthand)")

	fs.IntVar(&config.PeekLength, "peek", config.PeekLength, "number of raw bytes shown when decoding stops")
	fs.BoolVar(&config.NoValidate, "no-validate", false, "skip the XML well-formedness check")

	// バージョン表示
	fs.BoolVar(&config.ShowVersion, "version", false, "show version information")
	fs.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	config.Inputs = fs.Args()

	return config, nil
}

func usage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage of %s:\n", name)
	fmt.Fprintf(w, "  %s [flags] <file.sbsong|dir>...\n", name)
	fmt.Fprintln(w, "  --output string")
	fmt.Fprintln(w, "    \toutput directory for .pro5 files (default: next to each input)")
	fmt.Fprintln(w, "  -o string\toutput directory (shorthand)")
	fmt.Fprintln(w, "  --raw")
	fmt.Fprintln(w, "    \tdump decoded records as YAML instead of rendering (env RAW)")
	fmt.Fprintln(w, "  -r\tdump decoded records as YAML (shorthand)")
	fmt.Fprintln(w, "  --preview")
	fmt.Fprintln(w, "    \tprint the rendered document instead of writing it (env PREVIEW)")
	fmt.Fprintln(w, "  -p\tprint the rendered document (shorthand)")
	fmt.Fprintln(w, "  --remove-good")
	fmt.Fprintln(w, "    \tdelete inputs under _problems/ that decode completely (env RM_GOOD=y)")
	fmt.Fprintln(w, "  --debug")
	fmt.Fprintln(w, "    \tenable debug output and keep the whole read trace (env DBG=y)")
	fmt.Fprintln(w, "  -d\tenable debug output (shorthand)")
	fmt.Fprintln(w, "  --peek int")
	fmt.Fprintf(w, "    \tnumber of raw bytes shown when decoding stops (env PEEK) (default %d)\n", sbsong.DefaultPeekLength)
	fmt.Fprintln(w, "  --no-validate")
	fmt.Fprintln(w, "    \tskip the XML well-formedness check")
	fmt.Fprintln(w, "  --version")
	fmt.Fprintln(w, "    \tshow version information")
	fmt.Fprintln(w, "  -v\tshow version information (shorthand)")
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("sbsong2pro5 version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	out     io.Writer
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled, out: os.Stdout}
}

// NewDebugLoggerTo は出力先を指定してDebugLoggerを作成します
func NewDebugLoggerTo(enabled bool, out io.Writer) *DebugLogger {
	return &DebugLogger{enabled: enabled, out: out}
}

// Enabled はデバッグモードかどうかを返します
func (d *DebugLogger) Enabled() bool {
	return d.enabled
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Fprintf(d.out, format, a...)
	}
}

// WarnLogger は警告を常に出力します
type WarnLogger struct {
	out io.Writer
}

// NewWarnLogger は標準エラー出力に書き込むWarnLoggerを作成します
func NewWarnLogger() *WarnLogger {
	return &WarnLogger{out: os.Stderr}
}

// NewWarnLoggerTo は出力先を指定してWarnLoggerを作成します
func NewWarnLoggerTo(out io.Writer) *WarnLogger {
	return &WarnLogger{out: out}
}

// Printf は警告を出力します
func (w *WarnLogger) Printf(format string, a ...any) {
	fmt.Fprintf(w.out, format, a...)
}
