// Package target resolves the argument of the run command into a local
// script. Local paths are checked and passed through; http(s) URLs are
// downloaded into a temporary directory that lives until Script.Close.
package target
