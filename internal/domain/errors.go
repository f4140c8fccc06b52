package domain

import "errors"

// ErrUnknownAsset indicates a catalog lookup for an id that does not exist
var ErrUnknownAsset = errors.New("unknown asset id")

// ErrUnknownProfile indicates a lookup for a profile id that does not exist
var ErrUnknownProfile = errors.New("unknown profile id")

// ErrDownloadInFlight indicates a second acquisition was attempted for a
// family that already has a running job
var ErrDownloadInFlight = errors.New("download already in flight for family")

// ErrActivationIncomplete indicates a commit was attempted while one of the
// selected assets is not fully present on disk
var ErrActivationIncomplete = errors.New("selection not fully downloaded")

// ErrSetupRunning indicates a second orchestration run was requested while
// one is still in progress
var ErrSetupRunning = errors.New("setup already running")

// ErrRuntimeNotAcknowledged indicates the selection needs the optional
// interpreter runtime and the caller has not confirmed the preflight warning
var ErrRuntimeNotAcknowledged = errors.New("optional runtime warning not acknowledged")
