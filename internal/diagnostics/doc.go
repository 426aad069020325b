// Package diagnostics holds the troubleshooter catalog: one named,
// platform-specific producer of check steps per supported service, plus the
// reusable step builders they compose. The framework that runs them lives
// in internal/check.
package diagnostics
