// Package job is the process and job control engine of the shell.
//
// It spawns external programs as foreground or background jobs, wires their
// redirections and signal dispositions, waits on foreground jobs and reaps
// background jobs between prompts. The shell-wide foreground-only mode lives
// here as well, since it is toggled by SIGTSTP and read at dispatch.
package job
