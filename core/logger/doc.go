// Package logger records shell events as newline delimited JSON and
// summarizes them after the fact.
package logger
