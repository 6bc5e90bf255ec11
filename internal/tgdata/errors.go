package tgdata

import (
	"errors"
	"fmt"
	"time"

	"github.com/gotd/td/tgerr"
)

var (
	// ErrAccessDenied is returned when a chat's history cannot be read by the account.
	ErrAccessDenied = errors.New("chat access denied")
	// ErrInvalidChannel is returned when a channel ID or access hash is rejected.
	ErrInvalidChannel = errors.New("channel invalid")
	// ErrUnknownChannelKind is returned for channel records without a megagroup,
	// gigagroup or broadcast flag.
	ErrUnknownChannelKind = errors.New("unknown channel kind")
)

const takeoutInitDelay = "TAKEOUT_INIT_DELAY"

// CooldownError is returned when Telegram delays the start of a takeout session.
type CooldownError struct {
	Wait time.Duration
	Err  error
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("for security reasons, you will be able to begin downloading your data in %s; "+
		"all your devices were notified about the export request", e.Wait)
}

func (e *CooldownError) Unwrap() error {
	return e.Err
}

// asCooldown converts a TAKEOUT_INIT_DELAY_X error into a CooldownError.
func asCooldown(err error) (*CooldownError, bool) {
	rpcErr, ok := tgerr.AsType(err, takeoutInitDelay)
	if !ok {
		return nil, false
	}
	return &CooldownError{
		Wait: time.Duration(rpcErr.Argument) * time.Second,
		Err:  err,
	}, true
}

// isAccessDenied reports whether the RPC error means the chat is private or forbidden.
func isAccessDenied(err error) bool {
	rpcErr, ok := tgerr.As(err)
	if !ok {
		return false
	}
	return rpcErr.Code == 400 || rpcErr.Code == 403
}

func isForbidden(err error) bool {
	rpcErr, ok := tgerr.As(err)
	return ok && rpcErr.Code == 403
}

func isBadRequest(err error) bool {
	rpcErr, ok := tgerr.As(err)
	return ok && rpcErr.Code == 400
}
