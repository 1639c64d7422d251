// Package platform provides cross-platform operations that differ by OS:
// writing owner-only files (a no-op chmod on Windows) and opening a URL in
// the user's browser.
package platform
