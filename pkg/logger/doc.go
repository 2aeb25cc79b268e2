// Package logger builds the log/slog logger shared by the server, the RunPod
// client and the request handlers.
package logger
