// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/config"
	sberrors "github.com/shiroemons/go-sbsong/internal/sbsong2pro5/errors"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/fileutil"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/interfaces"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/models"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/report"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/xmlcheck"
	"github.com/shiroemons/go-sbsong/pkg/pro5"
	"github.com/shiroemons/go-sbsong/pkg/sbsong"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config    *config.Config
	logger    *config.DebugLogger
	warn      interfaces.Logger
	fs        interfaces.FileSystem
	validator interfaces.Validator
	renderer  interfaces.Renderer
	reporter  interfaces.Reporter
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Validator  interfaces.Validator
	Renderer   interfaces.Renderer
	Reporter   interfaces.Reporter
	Logger     *config.DebugLogger
	Warn       interfaces.Logger
	UUIDs      interfaces.UUIDSource
	Now        func() time.Time
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = config.NewDebugLogger(cfg.DebugMode)
	}

	warn := opts.Warn
	if warn == nil {
		warn = config.NewWarnLogger()
	}

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	var validator interfaces.Validator
	if opts.Validator != nil {
		validator = opts.Validator
	} else {
		validator = xmlcheck.NewValidator()
	}

	var renderer interfaces.Renderer
	if opts.Renderer != nil {
		renderer = opts.Renderer
	} else {
		renderer = pro5.NewRenderer(pro5.Options{UUIDs: opts.UUIDs, Now: opts.Now, Logger: warn})
	}

	var reporter interfaces.Reporter
	if opts.Reporter != nil {
		reporter = opts.Reporter
	} else {
		reporter = report.NewReporter()
	}

	return &App{
		config:    cfg,
		logger:    logger,
		warn:      warn,
		fs:        fs,
		validator: validator,
		renderer:  renderer,
		reporter:  reporter,
	}
}

// Run は入力ファイルを 1 つずつ変換します。
// 1 ファイルの失敗は報告して次のファイルへ進み、集計を返します。
func (a *App) Run(ctx context.Context) (*models.Summary, error) {
	inputs, err := fileutil.ExpandInputs(a.fs, a.config.Inputs)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputFiles
	}
	a.logger.Printf("%d 個のファイルを処理します\n", len(inputs))

	summary := &models.Summary{}
	for _, input := range inputs {
		// コンテキストのキャンセルチェック
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		result := a.processFile(input)
		if result.Status == models.StatusFailed {
			a.reporter.Failed(input, result.Err)
		}
		summary.Add(result)
	}
	a.reporter.Summary(summary)

	return summary, nil
}

// processFile は 1 つの .sbsong を処理します
func (a *App) processFile(input string) *models.Result {
	result := &models.Result{Input: input}
	fail := func(op string, sentinel, err error) *models.Result {
		result.Status = models.StatusFailed
		result.Err = sberrors.NewFileError(op, input, fmt.Errorf("%w: %w", sentinel, err))
		return result
	}

	data, err := a.fs.ReadFile(input)
	if err != nil {
		return fail("read", ErrReadInput, err)
	}
	a.logger.Printf("%s を読み込みました (%d バイト)\n", input, len(data))

	decoded := sbsong.DecodeWithOptions(data, sbsong.Options{
		PeekLength: a.config.PeekLength,
		Verbose:    a.config.DebugMode,
	})
	if decoded.Stalled() {
		return a.reportIncomplete(result, decoded)
	}
	a.logger.Printf("%s: %d 個のレコード\n", input, len(decoded.Records))
	a.logRemainders(input, decoded.Records)

	if a.config.RemoveGood && fileutil.IsProblemFile(input) {
		if err := a.fs.Remove(input); err != nil {
			a.warn.Printf("警告: %s を削除できませんでした: %v\n", input, err)
		} else {
			result.Removed = true
			a.reporter.Removed(input)
		}
	}

	if a.config.Raw {
		if err := a.reporter.Raw(input, decoded); err != nil {
			return fail("dump", ErrWriteOutput, err)
		}
		result.Status = models.StatusDumped
		return result
	}

	song, err := sbsong.Interpret(decoded.Records)
	if err != nil {
		return fail("interpret", ErrInterpret, err)
	}

	var buf bytes.Buffer
	rendered, err := a.renderer.Render(&buf, song)
	if err != nil {
		return fail("render", ErrRender, err)
	}
	result.Unresolved = rendered.Unresolved
	result.Output = fileutil.OutputPath(input, a.config.OutputDir)

	if a.config.Preview {
		if err := a.reporter.Preview(result.Output, buf.Bytes()); err != nil {
			return fail("preview", ErrWriteOutput, err)
		}
		result.Status = models.StatusPreviewed
		return result
	}

	if err := fileutil.EnsureDir(a.fs, result.Output); err != nil {
		return fail("write", ErrWriteOutput, err)
	}
	if err := a.fs.WriteFile(result.Output, buf.Bytes(), 0644); err != nil {
		return fail("write", ErrWriteOutput, sberrors.NewRenderError(result.Output, err))
	}
	result.Status = models.StatusConverted
	a.reporter.Converted(result)

	result.ValidXML = true
	if !a.config.NoValidate {
		if err := a.validator.Validate(bytes.NewReader(buf.Bytes())); err != nil {
			result.ValidXML = false
			a.warn.Printf("警告: %v\n", sberrors.NewRenderError(result.Output, fmt.Errorf("%w: %w", sberrors.ErrInvalidXML, err)))
		}
	}
	return result
}

// reportIncomplete は途中で止まったデコードの記録を出力します
func (a *App) reportIncomplete(result *models.Result, decoded *sbsong.Result) *models.Result {
	result.Status = models.StatusIncomplete
	result.Err = sberrors.NewFileError("decode", result.Input, sberrors.ErrIncompleteDecode)
	if decoded.Err != nil {
		result.Err = sberrors.NewFileError("decode", result.Input, fmt.Errorf("%w: %w", sberrors.ErrIncompleteDecode, decoded.Err))
	}
	a.logger.Printf("%s: %d 個のレコードを読み込んだところで停止しました\n", result.Input, len(decoded.Records))
	if err := a.reporter.Raw(result.Input, decoded); err != nil {
		a.warn.Printf("警告: %s の読み込み記録を出力できませんでした: %v\n", result.Input, err)
	}
	return result
}

// logRemainders は宣言された長さと読み込んだ値の長さが合わないレコードをデバッグ出力します
func (a *App) logRemainders(input string, records []sbsong.Record) {
	if !a.logger.Enabled() {
		return
	}
	for i, rec := range records {
		if rec.Remainder != 0 {
			a.logger.Printf("%s: レコード %d (%v) の長さの差分 %d バイト\n", input, i, rec.Label(), rec.Remainder)
		}
	}
}
