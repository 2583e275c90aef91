package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/config"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/mocks"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/models"
	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/report"
	"github.com/shiroemons/go-sbsong/pkg/sbsong"
)

type testEnv struct {
	fs        *mocks.MockFileSystem
	validator *mocks.MockValidator
	warn      *mocks.MockLogger
	out       *bytes.Buffer
}

func newTestApp(cfg *config.Config) (*App, *testEnv) {
	if cfg.PeekLength == 0 {
		cfg.PeekLength = sbsong.DefaultPeekLength
	}
	env := &testEnv{
		fs:        mocks.NewMockFileSystem(),
		validator: &mocks.MockValidator{},
		warn:      &mocks.MockLogger{},
		out:       &bytes.Buffer{},
	}
	app := NewWithOptions(cfg, Options{
		FileSystem: env.fs,
		Validator:  env.validator,
		Reporter:   report.NewReporterTo(env.out),
		Logger:     config.NewDebugLoggerTo(false, env.out),
		Warn:       env.warn,
		UUIDs:      &mocks.SequenceUUIDSource{},
		Now:        func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
	})
	return app, env
}

func (e *testEnv) warnings() string {
	return strings.Join(e.warn.Messages, "")
}

func TestApp_Run_Convert(t *testing.T) {
	app, env := newTestApp(&config.Config{Inputs: []string{"songs"}})
	env.fs.Dirs["songs"] = true
	env.fs.Files[filepath.Join("songs", "a.sbsong")] = goodSong()

	summary, err := app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(summary.Results))
	}
	result := summary.Results[0]
	wantOutput := filepath.Join("songs", "a.pro5")
	if result.Status != models.StatusConverted || result.Output != wantOutput {
		t.Errorf("Unexpected result %+v", result)
	}
	doc, ok := env.fs.Files[wantOutput]
	if !ok {
		t.Fatalf("Output file %s was not written", wantOutput)
	}
	if !strings.Contains(string(doc), `CCLISongTitle="Test Song"`) {
		t.Errorf("Output does not contain the song title")
	}
	if env.validator.Calls != 1 || !result.ValidXML {
		t.Errorf("Validator calls = %d, ValidXML = %v", env.validator.Calls, result.ValidXML)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0] != "Missing" {
		t.Errorf("Unresolved = %v", result.Unresolved)
	}
	if !strings.Contains(env.warnings(), "Missing") {
		t.Errorf("Warnings should mention the missing part: %q", env.warnings())
	}
	if !strings.Contains(env.out.String(), filepath.Join("songs", "a.sbsong")+" => "+wantOutput+" (missing: Missing)") {
		t.Errorf("Output should report the conversion: %q", env.out.String())
	}
}

func TestApp_Run_Modes(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		input      string
		data       []byte
		wantStatus models.Status
		wantOut    string
		wantFile   string
		wantRemove bool
	}{
		{
			name:       "生データ出力",
			cfg:        config.Config{Raw: true},
			input:      "a.sbsong",
			data:       goodSong(),
			wantStatus: models.StatusDumped,
			wantOut:    "a.sbsong:",
		},
		{
			name:       "プレビュー",
			cfg:        config.Config{Preview: true},
			input:      "a.sbsong",
			data:       goodSong(),
			wantStatus: models.StatusPreviewed,
			wantOut:    "a.pro5 will be:\n<?xml",
		},
		{
			name:       "出力ディレクトリ指定",
			cfg:        config.Config{OutputDir: "out"},
			input:      "a.sbsong",
			data:       goodSong(),
			wantStatus: models.StatusConverted,
			wantFile:   filepath.Join("out", "a.pro5"),
		},
		{
			name:       "問題ファイルの削除",
			cfg:        config.Config{RemoveGood: true, Raw: true},
			input:      "_problems/a.sbsong",
			data:       goodSong(),
			wantStatus: models.StatusDumped,
			wantOut:    "_problems/a.sbsong removed\n",
			wantRemove: true,
		},
		{
			name:       "問題ディレクトリ以外は削除しない",
			cfg:        config.Config{RemoveGood: true, Raw: true},
			input:      "songs/a.sbsong",
			data:       goodSong(),
			wantStatus: models.StatusDumped,
		},
		{
			name:       "読み込みが停止",
			cfg:        config.Config{RemoveGood: true},
			input:      "_problems/b.sbsong",
			data:       stalledSong(),
			wantStatus: models.StatusIncomplete,
			wantOut:    "snapshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Inputs = []string{tt.input}
			app, env := newTestApp(&cfg)
			env.fs.Files[tt.input] = tt.data

			summary, err := app.Run(context.Background())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			result := summary.Results[0]
			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (err: %v)", result.Status, tt.wantStatus, result.Err)
			}
			if tt.wantOut != "" && !strings.Contains(env.out.String(), tt.wantOut) {
				t.Errorf("Output should contain %q, got %q", tt.wantOut, env.out.String())
			}
			if tt.wantFile != "" {
				if _, ok := env.fs.Files[tt.wantFile]; !ok {
					t.Errorf("Expected output file %s", tt.wantFile)
				}
			}
			if result.Removed != tt.wantRemove {
				t.Errorf("Removed = %v, want %v", result.Removed, tt.wantRemove)
			}
			if _, exists := env.fs.Files[tt.input]; exists == tt.wantRemove {
				t.Errorf("Input existence = %v after run", exists)
			}
			if tt.cfg.Raw || tt.cfg.Preview {
				for name := range env.fs.Files {
					if strings.HasSuffix(name, ".pro5") {
						t.Errorf("No .pro5 should be written in raw/preview mode: %s", name)
					}
				}
			}
		})
	}
}

func TestApp_Run_Failures(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		setup   func(env *testEnv)
		wantErr error
	}{
		{
			name:    "曲パートの重複",
			data:    duplicateSong(),
			wantErr: sbsong.ErrDuplicateSection,
		},
		{
			name: "書き込み失敗",
			data: goodSong(),
			setup: func(env *testEnv) {
				env.fs.WriteError = errors.New("disk full")
			},
			wantErr: ErrWriteOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, env := newTestApp(&config.Config{Inputs: []string{"bad.sbsong", "good.sbsong"}})
			env.fs.Files["bad.sbsong"] = tt.data
			env.fs.Files["good.sbsong"] = goodSong()
			if tt.setup != nil {
				tt.setup(env)
			}

			summary, err := app.Run(context.Background())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if len(summary.Results) != 2 {
				t.Fatalf("Each file should produce a result, got %d", len(summary.Results))
			}
			if !summary.Failed() {
				t.Error("Summary should report a failure")
			}
			bad := summary.Results[0]
			if !errors.Is(bad.Err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, bad.Err)
			}
			if !strings.Contains(env.out.String(), "bad.sbsong: ") {
				t.Errorf("Failure should be reported: %q", env.out.String())
			}
		})
	}
}

func TestApp_Run_InvalidXML(t *testing.T) {
	app, env := newTestApp(&config.Config{Inputs: []string{"a.sbsong", "b.sbsong"}})
	env.fs.Files["a.sbsong"] = goodSong()
	env.fs.Files["b.sbsong"] = goodSong()
	env.validator.Err = errors.New("broken")

	summary, err := app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.InvalidXML != 2 {
		t.Errorf("InvalidXML = %d, want 2", summary.InvalidXML)
	}
	if !strings.Contains(env.out.String(), "2 files were produced with invalid XML!") {
		t.Errorf("Summary line missing: %q", env.out.String())
	}
	if !strings.Contains(env.warnings(), "a.pro5") {
		t.Errorf("Validation warning should name the output: %q", env.warnings())
	}
}

func TestApp_Run_NoValidate(t *testing.T) {
	app, env := newTestApp(&config.Config{Inputs: []string{"a.sbsong"}, NoValidate: true})
	env.fs.Files["a.sbsong"] = goodSong()
	env.validator.Err = errors.New("broken")

	summary, err := app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if env.validator.Calls != 0 || summary.InvalidXML != 0 {
		t.Errorf("Validator should not run: calls=%d invalid=%d", env.validator.Calls, summary.InvalidXML)
	}
}

func TestApp_Run_Errors(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []string
		ctx     func() context.Context
		wantErr error
	}{
		{
			name:    "入力なし",
			inputs:  nil,
			ctx:     context.Background,
			wantErr: ErrNoInputFiles,
		},
		{
			name:   "キャンセル済み",
			inputs: []string{"a.sbsong"},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, env := newTestApp(&config.Config{Inputs: tt.inputs})
			env.fs.Files["a.sbsong"] = goodSong()
			if _, err := app.Run(tt.ctx()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApp_Run_DebugRemainders(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		wantLog bool
	}{
		{name: "デバッグ時は差分を出力", debug: true, wantLog: true},
		{name: "通常時は出力しない", debug: false, wantLog: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Inputs: []string{"a.sbsong"}, Raw: true, DebugMode: tt.debug}
			app, env := newTestApp(cfg)
			var log bytes.Buffer
			app.logger = config.NewDebugLoggerTo(tt.debug, &log)

			// 宣言された長さ 20 に対して文字列は 5 バイトなので差分は 13
			d := &sbsongData{}
			env.fs.Files["a.sbsong"] = d.tag(1, 20, 6).str("Hello").end()

			if _, err := app.Run(context.Background()); err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			got := strings.Contains(log.String(), "差分 13 バイト")
			if got != tt.wantLog {
				t.Errorf("Remainder logged = %v, want %v: %q", got, tt.wantLog, log.String())
			}
		})
	}
}
