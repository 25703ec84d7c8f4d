// Package application provides application initialization and dependency wiring.
// It builds the weather client from configuration and runs the one-shot
// pipeline (credential, request, fetch, output), keeping the main package
// focused on CLI parsing and process lifecycle.
package application
