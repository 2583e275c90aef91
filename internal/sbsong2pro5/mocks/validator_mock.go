package mocks

import (
	"io"
)

// MockValidator はテスト用のValidatorモック
type MockValidator struct {
	// Err は Validate が返すエラーです
	Err   error
	Calls int
	// Documents は検査した文書です
	Documents []string
}

// Validate は文書を記録して Err を返します
func (v *MockValidator) Validate(r io.Reader) error {
	v.Calls++
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	v.Documents = append(v.Documents, string(data))
	return v.Err
}
