// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"path/filepath"

	"github.com/shiroemons/go-sbsong/internal/sbsong2pro5/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files   map[string][]byte
	Dirs    map[string]bool
	Removed []string
	// Error はすべての操作が返すエラーです
	Error error
	// WriteError は WriteFile だけが返すエラーです
	WriteError error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// FileExists はファイルかディレクトリが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	if _, exists := fs.Files[filename]; exists {
		return true
	}
	return fs.Dirs[filename]
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	if fs.WriteError != nil {
		return fs.WriteError
	}
	fs.Files[filename] = data
	return nil
}

// Remove はファイルを削除します
func (fs *MockFileSystem) Remove(filename string) error {
	if fs.Error != nil {
		return fs.Error
	}
	if _, exists := fs.Files[filename]; !exists {
		return errors.New("file not found")
	}
	delete(fs.Files, filename)
	fs.Removed = append(fs.Removed, filename)
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	if _, exists := fs.Files[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), isDir: false}, nil
	}
	if _, exists := fs.Dirs[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	return nil, errors.New("file not found")
}

// ReadDir はディレクトリを読み込みます
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	if !fs.Dirs[dirname] {
		return nil, errors.New("directory not found")
	}

	var entries []interfaces.DirEntry
	// ファイルをディレクトリエントリとして追加
	for path := range fs.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockFileInfo{name: filepath.Base(path)})
		}
	}
	// サブディレクトリをエントリとして追加
	for path := range fs.Dirs {
		if filepath.Dir(path) == dirname && path != dirname {
			entries = append(entries, &MockFileInfo{name: filepath.Base(path), isDir: true})
		}
	}

	return entries, nil
}

// MockFileInfo はテスト用のFileInfo/DirEntry実装
type MockFileInfo struct {
	name  string
	isDir bool
}

// Name はファイル名を返します
func (fi *MockFileInfo) Name() string {
	return fi.name
}

// IsDir はディレクトリかどうかを返します
func (fi *MockFileInfo) IsDir() bool {
	return fi.isDir
}
