// Package script embeds a sandboxed Lua interpreter that lets users
// define their own actions. A script calls keyweave.action to register
// a handler under the "user." namespace and keyweave.bind to attach it
// to keys; from then on the action behaves like a built-in one,
// including count handling and the read-only surface check.
package script
