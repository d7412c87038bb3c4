// Package services hosts clients for external collaborators and the shared
// error taxonomy commands use to classify their failures.
package services
