package domain

import "errors"

var (
	// ErrSessionAlreadyActive is returned when a session is started while one is running.
	ErrSessionAlreadyActive = errors.New("a session is already active")

	// ErrNoActiveSession is returned when ending a session that was never started.
	ErrNoActiveSession = errors.New("no active session")

	// ErrUnknownLocale is returned for locale codes without a translation table.
	ErrUnknownLocale = errors.New("unknown locale")
)
