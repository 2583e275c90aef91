// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/interfaces"
)

const (
	// InputExt は入力ファイルの拡張子です
	InputExt = ".sbsong"
	// OutputExt は出力ファイルの拡張子です
	OutputExt = ".pro5"
	// ProblemsDir は読み込みに問題があったファイルを置くディレクトリです
	ProblemsDir = "_problems"
)

// OutputFilename は入力ファイル名から出力ファイル名を生成します。
// 拡張子 .sbsong だけを取り除き、それ以外の拡張子は残します。
func OutputFilename(inputPath string) string {
	return strings.TrimSuffix(filepath.Base(inputPath), InputExt) + OutputExt
}

// OutputPath は出力先のパスを返します。outputDir が空なら入力ファイルと同じディレクトリです。
func OutputPath(inputPath, outputDir string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, OutputFilename(inputPath))
}

// IsProblemFile は _problems/ 以下の入力か判定します
func IsProblemFile(path string) bool {
	return strings.HasPrefix(filepath.ToSlash(filepath.Clean(path)), ProblemsDir+"/")
}

// ExpandInputs は引数を入力ファイルの一覧にします。
// ディレクトリは直下の .sbsong ファイルを名前順に展開し、ファイルはそのまま使います。
func ExpandInputs(fs interfaces.FileSystem, args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := fs.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInputNotFound, arg, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}

		entries, err := fs.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, arg, err)
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), InputExt) {
				continue
			}
			found = append(found, filepath.Join(arg, entry.Name()))
		}
		sort.Strings(found)
		inputs = append(inputs, found...)
	}
	return inputs, nil
}

// EnsureDir は出力先ディレクトリを作成します
func EnsureDir(fs interfaces.FileSystem, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "." || fs.FileExists(dir) {
		return nil
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	return nil
}
