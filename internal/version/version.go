// Package version carries the release version stamped into builds.
package version

// Number is the semantic version of this build.
const Number = "0.1.0"
