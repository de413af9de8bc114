package service

import (
	"github.com/cockroachdb/errors"

	"radix-meme/pkg/radix"
)

// ErrFetchFailed 必需的第一步 gateway 调用失败
var ErrFetchFailed = errors.New("radix meme fetch failed")

// FetchError 携带失败调用的 ApiResult, 可用 errors.Is(err, ErrFetchFailed) 判断
type FetchError struct {
	Op      string
	Address string
	Result  radix.ApiResult
	err     error
}

func (e *FetchError) Error() string {
	return e.err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.err
}

func newFetchError(op, address string, result radix.ApiResult) error {
	return errors.WithStack(&FetchError{
		Op:      op,
		Address: address,
		Result:  result,
		err:     errors.Wrapf(ErrFetchFailed, "%s %s: status %d: %s", op, address, result.Status, result.Message),
	})
}

// 状态 200 但响应体无法解析时, 同样视为第一步失败
func newDecodeError(op, address string, result radix.ApiResult, cause error) error {
	return errors.WithStack(&FetchError{
		Op:      op,
		Address: address,
		Result:  result,
		err:     errors.Wrapf(ErrFetchFailed, "%s %s: %v", op, address, cause),
	})
}
