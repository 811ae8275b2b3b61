// Package tmux provides a client for driving an isolated tmux server.
//
// Every command runs against a dedicated server socket (tmux -L), so the
// sessions this package manages never mix with the user's default-socket
// sessions. Session creation uses tmux's attach-or-create semantics
// (new-session -A), which the server resolves atomically; this package
// performs no arbitration of its own.
//
// Commands are executed through a Runner, an injected capability for
// spawning external processes. Tests substitute a fake Runner instead of
// requiring a tmux installation; see [NewClientWithRunner].
//
// This package requires tmux to be installed and available in PATH for
// real use. Use [Client.IsAvailable] to check at runtime.
package tmux
