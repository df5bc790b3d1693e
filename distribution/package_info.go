// Package distribution provisions the ephemeral package index used by
// integration tests that install the project under test.
//
// Models logged during tests depend on the dev version of MLflow built from
// source (e.g. mlflow==1.20.0.dev0), which is not available on PyPI. For the
// duration of a test session this package builds a wheel for the dev version
// into a fresh directory, serves that directory from a local HTTP server on
// an OS-assigned port, and appends the server's URL to the installer's
// extra-index environment variable so pip can resolve the wheel.
//
// Everything here is a scoped resource: acquisition happens at session
// start, and Close must run on every exit path so the server never outlives
// the session.
package distribution
