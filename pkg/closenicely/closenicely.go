package closenicely

import (
	"errors"
	"io"
	"syscall"

	"go.uber.org/zap"
)

func OrDebug(closer io.Closer) {
	FuncOrDebug(closer.Close)
}

// FuncOrDebug runs closer, logging any failure at debug. Syncing a terminal or pipe fails with
// EINVAL or ENOTTY on some platforms; those are not reported.
func FuncOrDebug(closer func() error) {
	err := closer()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return
	}
	zap.L().Named("close").Debug("failed to close resource", zap.Error(err))
}
