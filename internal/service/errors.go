package service

import "errors"

var (
	// ErrNoReports means a finalize target month has no reports at all.
	ErrNoReports = errors.New("no reports exist for month")
	// ErrMonthFinalized means the month is closed and the operation would
	// rewrite finalized history.
	ErrMonthFinalized = errors.New("month already finalized")
	// ErrMonthNotFinalized means reopen was called on an open month.
	ErrMonthNotFinalized = errors.New("month is not finalized")
	// ErrUnknownSetting means the setting key is not one the engine reads.
	ErrUnknownSetting = errors.New("unknown setting key")
	// ErrInvalidSettingValue means the value does not fit the setting's type.
	ErrInvalidSettingValue = errors.New("invalid setting value")
)
