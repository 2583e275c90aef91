package pro5

import "errors"

var (
	// ErrUnresolvedOrderReference は並び順に存在しない曲パートが含まれている場合の警告です
	ErrUnresolvedOrderReference = errors.New("並び順の曲パートが見つかりません")

	// ErrWriteDocument は XML の書き込みに失敗した場合のエラー
	ErrWriteDocument = errors.New("XMLの書き込みに失敗しました")

	// ErrNilSong は曲が nil の場合のエラー
	ErrNilSong = errors.New("曲がありません")
)
