package app

import "errors"

var (
	// ErrReadInput は入力ファイルの読み込みに失敗した場合のエラー
	ErrReadInput = errors.New("入力ファイルの読み込みに失敗しました")

	// ErrInterpret は曲の組み立てに失敗した場合のエラー
	ErrInterpret = errors.New("曲データの解釈に失敗しました")

	// ErrRender は .pro5 の生成に失敗した場合のエラー
	ErrRender = errors.New(".pro5の生成に失敗しました")

	// ErrWriteOutput は出力ファイルの書き込みに失敗した場合のエラー
	ErrWriteOutput = errors.New("出力ファイルの書き込みに失敗しました")

	// ErrNoInputFiles は入力ファイルがない場合のエラー
	ErrNoInputFiles = errors.New(".sbsong ファイルが指定されていません")
)
