package main

import (
	"context"
	"errors"
	"io/fs"

	"github.com/murkotick/production-script-editor/internal/app/script/domain"
	"github.com/murkotick/production-script-editor/internal/app/script/htmldoc"
	"github.com/murkotick/production-script-editor/internal/app/script/storage"
	"github.com/murkotick/production-script-editor/internal/app/script/usecases/replay_session"
	"github.com/murkotick/production-script-editor/internal/config"
)

// Exit codes reported by scriptedit.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitNotFound = 3
	exitCanceled = 130
)

// exitCode translates sentinel errors into process exit codes. Unknown
// errors become exitFailure.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return exitCanceled
	}

	// Not found
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, domain.ErrFieldNotFound),
		errors.Is(err, htmldoc.ErrRowNotFound):
		return exitNotFound
	}

	// Bad input
	switch {
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, errUnsupportedOutput),
		errors.Is(err, replay_session.ErrUnknownAction),
		errors.Is(err, replay_session.ErrInvalidStep),
		errors.Is(err, replay_session.ErrNoTarget),
		errors.Is(err, htmldoc.ErrMissingTitle),
		errors.Is(err, htmldoc.ErrMissingTable),
		errors.Is(err, storage.ErrUnsupportedVersion):
		return exitUsage
	}

	return exitFailure
}
